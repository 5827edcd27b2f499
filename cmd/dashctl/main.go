// Command dashctl queries the analytics backend from a terminal, using the
// same client and view models as the dashboard server.
package main

import (
	"os"

	"github.com/fatih/color"

	repoAnalytics "student-performance-dashboard/app/repository/analytics"
)

func main() {
	root := newRootCmd(os.Stdout, repoAnalytics.NewAnalyticsRepository)
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
