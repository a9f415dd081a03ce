package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"nex/internal/workflow"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var exclude []string
	var noProjectDetection bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Preview categories, protected files and duplicates without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			target := strings.TrimSpace(dir)
			if target == "" {
				target = "."
			}
			opts := workflow.OptionsFromConfig(cfg, target)
			opts.Exclude = append(opts.Exclude, exclude...)
			if noProjectDetection {
				opts.ProjectDetection = false
			}
			progress := newHashProgress(cmd.ErrOrStderr())
			opts.Progress = progress.update

			preview, err := workflow.NewRunner(opts, nil, logger).Preview(cmd.Context())
			progress.finish()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, newPreviewView(preview))
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Directory: %s\n", preview.Target)
			fmt.Fprintf(out, "Project directory: %s\n", yesNo(preview.Project.IsProject))
			if preview.Project.IsProject {
				fmt.Fprintf(out, "Detected by: %s\n", preview.Project.Marker)
				if len(preview.Project.Protected) > 0 {
					fmt.Fprintln(out, "Protected files:")
					fmt.Fprint(out, renderProtected(preview.Project.Protected))
				}
			}
			if preview.Files.Empty() {
				fmt.Fprintln(out, colorText("No files found to organize.", ansiYellow, colorize))
				return nil
			}
			fmt.Fprintln(out, renderFileMap(preview.Files, cfg.Organize.PreviewLimit))
			if len(preview.Groups) == 0 {
				fmt.Fprintln(out, colorText("No duplicate files found.", ansiGreen, colorize))
			} else {
				fmt.Fprint(out, renderDuplicateGroups(preview.Groups))
				fmt.Fprintf(out, "%d removable duplicates holding %s\n",
					preview.Stats.DuplicateFiles, humanize.Bytes(uint64(preview.Stats.ReclaimableBytes)))
			}
			if failures := renderFailures(preview.Report.Failures()); failures != "" {
				fmt.Fprintln(out, "Unreadable entries:")
				fmt.Fprintln(out, failures)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan (defaults to the current directory)")
	cmd.Flags().StringArrayVarP(&exclude, "exclude", "e", nil, "Glob pattern to exclude (repeatable)")
	cmd.Flags().BoolVar(&noProjectDetection, "no-project-detection", false, "Disable project detection")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the preview as JSON")
	return cmd
}
