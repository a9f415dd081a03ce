package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nex/internal/preflight"
	"nex/internal/workflow"
)

func runOrganize(cmd *cobra.Command, ctx *commandContext, flags organizeFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// Prompts move to stderr so --json output stays parseable.
	var promptOut io.Writer = cmd.OutOrStdout()
	if flags.json {
		promptOut = cmd.ErrOrStderr()
	}
	colorize := shouldColorize(promptOut)
	prompter := newTerminalPrompter(cmd.InOrStdin(), promptOut, flags.assumeYes, colorize, cfg.Organize.PreviewLimit)
	prompter.banner()

	target := strings.TrimSpace(flags.dir)
	if target == "" {
		target, err = prompter.promptDirectory(cmd.Context())
		if err != nil {
			return err
		}
	} else if target, err = preflight.CheckTarget(target); err != nil {
		return fmt.Errorf("%s is not a valid directory: %w", flags.dir, err)
	}

	opts := workflow.OptionsFromConfig(cfg, target)
	opts.Exclude = append(opts.Exclude, flags.exclude...)
	if flags.noProjectDetection {
		opts.ProjectDetection = false
	}
	opts.DryRun = flags.dryRun
	progress := newHashProgress(cmd.ErrOrStderr())
	opts.Progress = progress.update

	summary, err := workflow.NewRunner(opts, prompter, logger).Run(cmd.Context())
	progress.finish()
	if err != nil {
		return err
	}

	if flags.json {
		return writeJSON(cmd, newSummaryView(summary))
	}
	out := cmd.OutOrStdout()
	if summary.Outcome != workflow.OutcomeCompleted {
		return nil
	}
	if summary.DryRun {
		if moves := renderMoves(summary); moves != "" {
			fmt.Fprintln(out, "Planned changes:")
			fmt.Fprintln(out, moves)
		}
	}
	fmt.Fprintln(out, renderSummary(summary, colorize))
	if failures := renderFailures(summary.Failures); failures != "" {
		fmt.Fprintln(out, "Failed operations:")
		fmt.Fprintln(out, failures)
	}
	return nil
}
