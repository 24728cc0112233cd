package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cnharrison/jsonview/internal/render"
	"github.com/cnharrison/jsonview/internal/session"
)

// foldInfo represents a fold range in JSON output.
type foldInfo struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Lines   int    `json:"lines"`
	Summary string `json:"summary"`
}

type foldsFlags struct {
	documentFlags
	format string
}

// foldStyles are the lipgloss styles of the folds listing.
type foldStyles struct {
	Range   lipgloss.Style
	Count   lipgloss.Style
	Summary lipgloss.Style
	Heading lipgloss.Style
}

func newFoldStyles(color bool) foldStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return foldStyles{Range: plain, Count: plain, Summary: plain, Heading: plain}
	}
	return foldStyles{
		Range:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Summary: lipgloss.NewStyle(),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

func newFoldsCommand(g *globalFlags) *cobra.Command {
	flags := &foldsFlags{}

	cmd := &cobra.Command{
		Use:   "folds [file|url|-]",
		Short: "List the collapsible sections of a document",
		Long: `List every object and array that spans more than two lines of the
formatted document, with its line range and the one-line summary shown when it
is collapsed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := flags.loadSession(cmd.Context(), args)
			if err != nil {
				return err
			}
			folds := collectFolds(sess)

			if flags.format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(folds); err != nil {
					return fmt.Errorf("encoding folds: %w", err)
				}
				return nil
			}

			styles := newFoldStyles(colorEnabled(g.color, cmd.OutOrStdout()))
			return writeFolds(cmd.OutOrStdout(), folds, sess.Document().LineCount(), styles)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

const formatJSON = "json"

func collectFolds(sess *session.Session) []foldInfo {
	doc := sess.Document()
	folds := make([]foldInfo, 0, len(doc.Folds))
	for _, start := range doc.Folds.Starts() {
		r := doc.Folds[start]
		folds = append(folds, foldInfo{
			Start:   r.StartLine,
			End:     r.EndLine,
			Lines:   r.EndLine - r.StartLine + 1,
			Summary: strings.TrimSpace(render.CollapsedSummaryText(doc.Lines[start-1], doc.Lines[r.EndLine-1], r.Open, r.Close)),
		})
	}
	return folds
}

func writeFolds(w io.Writer, folds []foldInfo, lineCount int, styles foldStyles) error {
	if len(folds) == 0 {
		_, err := fmt.Fprintln(w, "no foldable sections")
		return err
	}

	width := len(strconv.Itoa(lineCount))
	if _, err := fmt.Fprintln(w, styles.Heading.Render(fmt.Sprintf("%d foldable sections", len(folds)))); err != nil {
		return err
	}
	for _, f := range folds {
		span := fmt.Sprintf("%*d-%-*d", width, f.Start, width, f.End)
		line := fmt.Sprintf("  %s  %s  %s",
			styles.Range.Render(span),
			styles.Count.Render(fmt.Sprintf("%*d lines", width, f.Lines)),
			styles.Summary.Render(f.Summary))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
