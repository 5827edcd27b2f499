package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	repoAnalytics "student-performance-dashboard/app/repository/analytics"
	service "student-performance-dashboard/app/service/dashboard"
)

// RepoFactory builds the backend client from the resolved settings.
type RepoFactory func(repoAnalytics.Options) repoAnalytics.AnalyticsRepository

// cli carries what every subcommand needs once settings are resolved.
type cli struct {
	out     io.Writer
	v       *viper.Viper
	newRepo RepoFactory

	repo repoAnalytics.AnalyticsRepository
	svc  *service.DashboardService
}

func newRootCmd(out io.Writer, newRepo RepoFactory) *cobra.Command {
	c := &cli{out: out, v: viper.New(), newRepo: newRepo}

	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Terminal client for the student performance analytics backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.svc != nil {
				c.svc.Charts().Close()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.dashctl.yaml)")
	flags.String("backend", "http://localhost:5000", "analytics backend base URL")
	flags.Duration("timeout", 10*time.Second, "backend request timeout")
	flags.String("token-secret", "", "secret used to sign the service token")
	flags.Bool("verbose", false, "print client logs to stderr")
	_ = c.v.BindPFlags(flags)

	root.AddCommand(
		c.classCmd(),
		c.studentCmd(),
		c.predictCmd(),
		c.uploadCmd(),
	)
	return root
}

// setup resolves flags, DASHCTL_* env vars and the config file, then builds
// the client.
func (c *cli) setup() error {
	// 1. Env: DASHCTL_BACKEND, DASHCTL_TOKEN_SECRET, ...
	c.v.SetEnvPrefix("DASHCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	// 2. Config file
	if err := c.readConfig(); err != nil {
		return err
	}

	if !c.v.GetBool("verbose") {
		log.SetOutput(io.Discard)
	}

	// 3. Client + service
	c.repo = c.newRepo(repoAnalytics.Options{
		BaseURL:     c.v.GetString("backend"),
		Timeout:     c.v.GetDuration("timeout"),
		TokenSecret: c.v.GetString("token-secret"),
	})
	c.svc = service.NewDashboardService(c.repo, nil, nil)
	return nil
}

func (c *cli) readConfig() error {
	if file := c.v.GetString("config"); file != "" {
		c.v.SetConfigFile(file)
		return c.v.ReadInConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	c.v.SetConfigFile(filepath.Join(home, ".dashctl.yaml"))
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
