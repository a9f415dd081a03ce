package main

import (
	"github.com/spf13/cobra"
)

// organizeFlags carries the flags shared by the root and scan commands.
type organizeFlags struct {
	dir                string
	exclude            []string
	noProjectDetection bool
	assumeYes          bool
	dryRun             bool
	json               bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool
	var flags organizeFlags

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:   "nex",
		Short: "Organize a directory into category folders and remove duplicates",
		Long: "nex sorts the files at the top level of a directory into category folders\n" +
			"(Audio, Images, Documents, ...) by extension, finds byte-identical duplicates,\n" +
			"and leaves recognized project files where they are.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")

	rootCmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "Directory to organize (prompts when omitted)")
	rootCmd.Flags().StringArrayVarP(&flags.exclude, "exclude", "e", nil, "Glob pattern to exclude (repeatable)")
	rootCmd.Flags().BoolVar(&flags.noProjectDetection, "no-project-detection", false, "Treat the directory as a plain folder even if it looks like a project")
	rootCmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Answer yes to every confirmation")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show planned moves and deletions without touching files")
	rootCmd.Flags().BoolVar(&flags.json, "json", false, "Print the final summary as JSON")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
