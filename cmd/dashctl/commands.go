package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"student-performance-dashboard/app/export"
	models "student-performance-dashboard/app/models/analytics"
	service "student-performance-dashboard/app/service/dashboard"
	"student-performance-dashboard/app/view"
)

func (c *cli) classCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "class <class-id>",
		Short: "Show class statistics and areas of concern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.svc.ClassAnalysis(ctxOf(cmd), args[0])
			if !res.Success {
				return noticeErr(res.Notice)
			}
			if res.Data == nil {
				return nil
			}
			printClass(c.out, res.Data.ClassID, res.Data.View)
			return nil
		},
	}
}

func (c *cli) studentCmd() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "student <student-id>",
		Short: "Show the performance table, predictions and recommendations of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID := args[0]

			// 1. Ambil data siswa
			resp, err := c.repo.FetchStudentPerformance(ctxOf(cmd), studentID)
			if err != nil {
				return errors.New(service.MsgStudentLoadPrefix + err.Error())
			}

			// 2. Bangun view model
			v, err := view.BuildStudentAnalysis(resp.Performance, resp.Analysis, resp.Suggestions)
			if err != nil {
				return errors.New(service.MsgStudentDisplayPrefix + err.Error())
			}
			printStudent(c.out, studentID, v)

			// 3. Export opsional
			if xlsxPath == "" {
				return nil
			}
			return writeXLSX(xlsxPath, resp.Performance)
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the performance table to this XLSX file")
	return cmd
}

func (c *cli) predictCmd() *cobra.Command {
	var pat, sat, attendance string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a performance level from PAT, SAT and attendance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.svc.Predict(ctxOf(cmd), view.PredictionForm{
				PatScore:             models.Scalar(pat),
				SatScore:             models.Scalar(sat),
				AttendancePercentage: models.Scalar(attendance),
			})
			if !res.Success {
				return noticeErr(res.Notice)
			}
			printPrediction(c.out, res.Data)
			return nil
		},
	}
	cmd.Flags().StringVar(&pat, "pat", "", "PAT score")
	cmd.Flags().StringVar(&sat, "sat", "", "SAT score")
	cmd.Flags().StringVar(&attendance, "attendance", "", "attendance percentage")
	return cmd
}

func (c *cli) uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a student data file to the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res := c.svc.Upload(ctxOf(cmd), filepath.Base(args[0]), f)
			if !res.Success {
				return noticeErr(res.Notice)
			}
			printNotice(c.out, res.Notice)
			return nil
		},
	}
}

func writeXLSX(path string, perf *models.StudentPerformance) error {
	var buf bytes.Buffer
	if err := export.WriteStudentTable(&buf, perf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func noticeErr(n *view.Notice) error {
	if n == nil {
		return errors.New("request failed")
	}
	return errors.New(n.Message)
}
