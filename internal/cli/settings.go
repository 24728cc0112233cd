package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cnharrison/jsonview/internal/settings"
	"github.com/cnharrison/jsonview/internal/theme"
)

func newSettingsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the saved viewer settings",
		Long: `Show or change the settings shared by the viewer and the HTML renderer.
Settings live in a YAML file under the user config directory; a running viewer
picks up changes immediately.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.store()
			if err != nil {
				return err
			}
			s, err := g.resolveSettings(cmd.Context(), cmd, store)
			if err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), s, colorEnabled(g.color, cmd.OutOrStdout()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <theme|fontSize> <value>",
		Short:     "Save one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{settings.KeyTheme, settings.KeyFontSize},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := g.store()
			if err != nil {
				return err
			}
			current, err := store.Get(ctx, settings.Defaults())
			if err != nil {
				return err
			}

			updated, err := setKey(current, args[0], args[1])
			if err != nil {
				return err
			}
			if err := updated.Validate(); err != nil {
				return err
			}
			if err := store.Set(ctx, updated); err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), updated, colorEnabled(g.color, cmd.OutOrStdout()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.store()
			if err != nil {
				return err
			}
			if err := store.Set(cmd.Context(), settings.Defaults()); err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), settings.Defaults(), colorEnabled(g.color, cmd.OutOrStdout()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.store()
			if err != nil {
				return err
			}
			fs, ok := store.(*settings.FileStore)
			if !ok {
				return errors.New("settings are not file-backed")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fs.Path())
			return err
		},
	})

	return cmd
}

func setKey(s settings.Settings, key, value string) (settings.Settings, error) {
	switch key {
	case settings.KeyTheme:
		s.Theme = value
	case settings.KeyFontSize:
		size, err := strconv.Atoi(value)
		if err != nil {
			return s, fmt.Errorf("%w: font size %q is not a number", settings.ErrInvalid, value)
		}
		s.FontSize = size
	default:
		return s, fmt.Errorf("%w: unknown key %q", settings.ErrInvalid, key)
	}
	return s, nil
}

func writeSettings(w io.Writer, s settings.Settings, color bool) error {
	key := lipgloss.NewStyle()
	value := lipgloss.NewStyle()
	if color {
		key = key.Foreground(lipgloss.Color("12")).Bold(true)
		value = value.Foreground(lipgloss.Color("10"))
	}

	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n",
		key.Render(settings.KeyTheme+":"), value.Render(fmt.Sprintf("%s (%s)", s.Theme, theme.Get(s.Theme).Name)),
		key.Render(settings.KeyFontSize+":"), value.Render(strconv.Itoa(s.FontSize)))
	return err
}
