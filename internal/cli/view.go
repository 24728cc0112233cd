package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/logging"
	"github.com/cnharrison/jsonview/internal/messaging"
	"github.com/cnharrison/jsonview/internal/settings"
	"github.com/cnharrison/jsonview/internal/ui"
)

const appName = "jsonview"

func newViewCommand(g *globalFlags) *cobra.Command {
	flags := &documentFlags{}

	cmd := &cobra.Command{
		Use:   "view [file|url|-]",
		Short: "Open the interactive viewer",
		Long: `Open a document in the terminal viewer.

Keys: j/k move, z toggles a fold, C/E collapse or expand everything, r switches
between raw and formatted, c copies, v/y select and copy lines, d downloads,
o opens the options and ? lists everything else.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, g, flags, args)
		},
	}
	flags.register(cmd)

	return cmd
}

func runView(cmd *cobra.Command, g *globalFlags, flags *documentFlags, args []string) error {
	level := "info"
	if g.debug {
		level = "debug"
	}
	logPath := logging.StatePath(appName)
	logger, closer := logging.NewFile(logPath, level)
	defer closer.Close()

	ctx, cancel := context.WithCancel(logging.WithLogger(cmd.Context(), logger))
	defer cancel()

	store, err := g.store()
	if err != nil {
		return err
	}
	s, err := g.resolveSettings(ctx, cmd, store)
	if err != nil {
		return err
	}

	sess, doc, err := flags.loadSession(ctx, args)
	if err != nil {
		return err
	}

	if fs, ok := store.(*settings.FileStore); ok {
		go func() {
			if err := fs.Watch(ctx); err != nil {
				logger.Warn("settings watcher stopped", logging.FieldPath, fs.Path(), logging.FieldError, err)
			}
		}()
	}

	bus := messaging.NewBus()
	bus.Bind("raw", messaging.ToggleJSONView)
	bus.Bind("options", messaging.OpenOptions)

	app := ui.NewApplication(sess, format.NewContentFormatter(), ui.Options{
		Location: doc.Location,
		Settings: s,
		Store:    store,
		Bus:      bus,
		Logger:   logger,
	})
	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("run viewer (log: %s): %w", logPath, err)
	}
	return nil
}
