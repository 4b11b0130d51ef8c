package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/cmd/kolett/opts"
	"github.com/kolett/kolett/pkg/callback"
	"github.com/kolett/kolett/pkg/engine"
	"github.com/kolett/kolett/pkg/manifest"
	"github.com/kolett/kolett/pkg/report"
	"github.com/kolett/kolett/pkg/status"
)

// NewDeliverCmd creates a new deliver command
func NewDeliverCmd(o *opts.RootOpts) *cobra.Command {
	var (
		manifestPath string
		rootOverride string
		templatePath string
		dryRun       bool
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "deliver",
		Short: "Deliver the files described by a manifest",
		Long: `Deliver processes a manifest end to end. It will:
1. Validate the manifest structure
2. Resolve each item's destination from its template
3. Transfer each item with its process method (copy, symlink, ...)
4. Write a Markdown report into the delivery directory
5. Execute any configured callbacks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "deliver").Logger().WithContext(cmd.Context())

			m, err := manifest.Load(ctx, manifestPath)
			if err != nil {
				return errors.Errorf("loading manifest: %w", err)
			}

			m = manifest.Filter(ctx, m, o.Config.Delivery.IgnorePatterns)
			if len(m.Items) == 0 {
				return errors.Errorf("no items left to deliver after filtering")
			}

			runOpts := engine.Options{
				Root:    o.Config.Storage.Root,
				DryRun:  dryRun,
				Workers: o.Config.Delivery.Workers,
			}
			if rootOverride != "" {
				runOpts.Root = rootOverride
			}
			if workers > 0 {
				runOpts.Workers = workers
			}

			o.UserLogger.LogRunStart(m.PackageName, runOpts.Root, dryRun)

			result, err := engine.New(nil).Run(ctx, m, runOpts)
			if err != nil {
				return errors.Errorf("running delivery: %w", err)
			}

			if dryRun {
				// Dry-run output goes to stdout so it can be piped and
				// reviewed; live runs get the interactive printer.
				formatter := status.NewDefaultOutcomeFormatter()
				for _, outcome := range result.Outcomes {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOutcome(outcome))
				}
			} else {
				for _, outcome := range result.Outcomes {
					o.UserLogger.LogOutcome(outcome)
				}
			}

			templateText, err := loadReportTemplate(templatePath, o.Config.Report.TemplatePath)
			if err != nil {
				return err
			}

			gen := report.NewGenerator(nil)
			content, err := gen.Render(ctx, result, templateText)
			if err != nil {
				return errors.Errorf("generating report: %w", err)
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "--- REPORT PREVIEW ---")
				fmt.Fprintln(cmd.OutOrStdout(), content)
				fmt.Fprintln(cmd.OutOrStdout(), "--- END PREVIEW ---")
			} else {
				if _, err := gen.Write(ctx, result, content); err != nil {
					return errors.Errorf("writing report: %w", err)
				}
				callback.RunAll(ctx, o.Config.Callbacks, result, content)
			}

			o.UserLogger.LogSummary(result)

			if counts := result.Counts(); counts.Failed > 0 {
				return errors.Errorf("%d of %d items failed", counts.Failed, counts.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "manifest file path (required)")
	cmd.Flags().StringVar(&rootOverride, "root", "", "override the delivery root")
	cmd.Flags().StringVar(&templatePath, "template", "", "report template file path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve everything, write nothing")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of parallel transfers (default from settings)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

// loadReportTemplate picks the report template: the --template flag wins
// over the settings file; empty selects the embedded default.
func loadReportTemplate(flagPath, settingsPath string) (string, error) {
	path := flagPath
	if path == "" {
		path = settingsPath
	}
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading report template: %w", err)
	}
	return string(data), nil
}
