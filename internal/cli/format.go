package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type formatFlags struct {
	documentFlags
	minify bool
}

func newFormatCommand(_ *globalFlags) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [file|url|-]",
		Short: "Print the canonical formatted JSON",
		Long: `Print the document the way the viewer lays it out: parsed and re-serialized
with two-space indentation, keys in first-seen order, the last value of a repeated
key, and numbers in shortest form. Non-JSON input is printed unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := flags.loadSession(cmd.Context(), args)
			if err != nil {
				return err
			}

			text := sess.CopyText()
			if flags.minify {
				text = sess.MinifiedText()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.minify, "minify", false, "strip insignificant whitespace instead")

	return cmd
}
