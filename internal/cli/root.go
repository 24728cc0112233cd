// Package cli provides the Cobra command structure for jsonview.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnharrison/jsonview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	noSettings bool
	color      string
	theme      string
	fontSize   int
}

// NewRootCommand creates the root jsonview command with all subcommands. Run
// without a subcommand it behaves like "view".
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}
	viewFlags := &documentFlags{}

	rootCmd := &cobra.Command{
		Use:   "jsonview [file|url|-]",
		Short: "Read JSON with folding, highlighting and selection-aware copy",
		Long: `jsonview formats a JSON document and shows it with syntax highlighting,
line numbers and collapsible objects and arrays.

Input comes from a file, an http(s) URL, or standard input. Bodies that are not
JSON are shown untouched. The same view can be rendered to a standalone HTML
page with "jsonview render".`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags, viewFlags, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the settings file")
	rootCmd.PersistentFlags().BoolVar(&flags.noSettings, "no-settings", false, "ignore the settings file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "color theme: dark, light")
	rootCmd.PersistentFlags().IntVar(&flags.fontSize, "font-size", 0, "font size in px for rendered HTML")
	viewFlags.register(rootCmd)

	rootCmd.AddCommand(newViewCommand(flags))
	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newFormatCommand(flags))
	rootCmd.AddCommand(newFoldsCommand(flags))
	rootCmd.AddCommand(newSettingsCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
