package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/logging"
	"github.com/cnharrison/jsonview/internal/session"
	"github.com/cnharrison/jsonview/internal/settings"
	"github.com/cnharrison/jsonview/internal/source"
)

// documentFlags select and shape the input document.
type documentFlags struct {
	contentType string
	collapseAll bool
	query       string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.contentType, "content-type", "", "declared content type, overriding the source's")
	cmd.Flags().BoolVar(&f.collapseAll, "collapse-all", false, "start with every fold collapsed")
	cmd.Flags().StringVar(&f.query, "query", "", "show only the value at this path (e.g. users.0.name)")
}

// store returns the settings store selected by the global flags.
func (g *globalFlags) store() (settings.Store, error) {
	if g.noSettings {
		return settings.NewMemoryStore(settings.Defaults()), nil
	}
	path := g.configPath
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return settings.NewFileStore(path), nil
}

// resolveSettings layers flags over the environment over the store over the
// defaults.
func (g *globalFlags) resolveSettings(ctx context.Context, cmd *cobra.Command, store settings.Store) (settings.Settings, error) {
	s := settings.Load(ctx, store)

	s, err := settings.ApplyEnv(s)
	if err != nil {
		return s, err
	}
	if cmd.Flags().Changed("theme") {
		s.Theme = g.theme
	}
	if cmd.Flags().Changed("font-size") {
		s.FontSize = g.fontSize
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// loadSession reads the input named by args and builds its session.
func (f *documentFlags) loadSession(ctx context.Context, args []string) (*session.Session, *source.Document, error) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	loader := &source.Loader{}
	doc, err := loader.Load(ctx, arg)
	if err != nil {
		return nil, nil, err
	}
	if f.contentType != "" {
		doc.ContentType = f.contentType
	}

	formatter := format.NewContentFormatter()
	body := doc.Body
	if f.query != "" {
		if !formatter.IsLikelyJSON(body, doc.ContentType) {
			return nil, nil, errors.New("--query needs a JSON document")
		}
		if body, err = formatter.Query(body, f.query); err != nil {
			return nil, nil, fmt.Errorf("query %q: %w", f.query, err)
		}
	}

	sess := session.New(session.NewDocument(body, doc.ContentType, formatter), formatter)
	if f.collapseAll {
		sess.CollapseAll()
	}

	logging.FromContext(ctx).Debug("document loaded",
		logging.FieldURL, doc.Location,
		logging.FieldContentType, doc.ContentType,
		logging.FieldLines, sess.Document().LineCount(),
		logging.FieldFolds, len(sess.Document().Folds))
	return sess, doc, nil
}

// colorEnabled decides whether w gets styled output. Mode values: "auto",
// "always", "never".
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
