package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/render"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	name     string
	year     string
	goals    string
	category string
	format   string
	out      string
	timeout  time.Duration
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one roadmap and print it",
		Long: `Generates a roadmap for a single student profile.

Example:
  futureforged generate --name "Alex Johnson" --year "10th Grade" \
    --goals "become a software engineer" --category school --out auto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "student name")
	cmd.Flags().StringVar(&opts.year, "year", "", "current year or grade")
	cmd.Flags().StringVar(&opts.goals, "goals", "", "ambitions and goals")
	cmd.Flags().StringVar(&opts.category, "category", string(futureforged.CategorySchool), "school or college")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json, markdown or dump")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", `also write the text export to this file ("auto" picks <Name>_Roadmap.txt)`)
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "generation timeout (default from config)")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	switch opts.format {
	case "text", "json", "markdown", "dump":
	default:
		return fmt.Errorf("unknown format %q (want text, json, markdown or dump)", opts.format)
	}

	if err := a.initLogger(); err != nil {
		return err
	}
	ctx := cmd.Context()
	shutdown, err := a.initTracing(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	category, err := futureforged.ParseStudentCategory(opts.category)
	if err != nil {
		return err
	}
	profile := futureforged.StudentProfile{
		Name:        opts.name,
		YearOrGrade: opts.year,
		Goals:       opts.goals,
		Category:    category,
	}

	generator, err := a.newGenerator()
	if err != nil {
		return err
	}

	timeout := opts.timeout
	if timeout == 0 {
		timeout = a.cfg.GetTimeout()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	roadmap, err := generator.GenerateRoadmap(ctx, category, profile)
	if err != nil {
		return err
	}

	if err := writeRoadmap(cmd.OutOrStdout(), opts.format, profile, roadmap); err != nil {
		return err
	}

	if opts.out != "" {
		path := opts.out
		if path == "auto" {
			path = render.FileName(profile.Name)
		}
		if err := os.WriteFile(path, []byte(render.Text(profile, roadmap)), 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
	}
	return nil
}

func writeRoadmap(w io.Writer, format string, profile futureforged.StudentProfile, roadmap *futureforged.Roadmap) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(roadmap)
	case "markdown":
		_, err := io.WriteString(w, render.Markdown(profile, roadmap))
		return err
	case "dump":
		_, err := fmt.Fprintln(w, litter.Sdump(roadmap))
		return err
	default:
		_, err := io.WriteString(w, render.Text(profile, roadmap))
		return err
	}
}
