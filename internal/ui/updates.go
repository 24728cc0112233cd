package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"
)

// refresh redraws every bar from the session state.
func (app *Application) refresh() {
	app.updateTopBar()
	app.updateToolbar()
	app.updateBottomBar()
}

func (app *Application) updateTopBar() {
	app.topBar.SetText(fmt.Sprintf("[::b]%s[::-]  %s", tview.Escape(app.title), app.sess.LineCountLabel()))
}

// toolbarButton mirrors one button of the rendered page toolbar.
type toolbarButton struct {
	key      string
	label    string
	disabled bool
}

func (app *Application) toolbarButtons() []toolbarButton {
	foldsDisabled := !app.sess.FoldControlsEnabled()
	return []toolbarButton{
		{key: "c", label: "Copy"},
		{key: "d", label: "Download"},
		{key: "C", label: "Collapse all", disabled: foldsDisabled},
		{key: "E", label: "Expand all", disabled: foldsDisabled},
		{key: "r", label: app.sess.ToggleLabel(), disabled: !app.sess.Document().IsJSON},
	}
}

func (app *Application) updateToolbar() {
	var b strings.Builder
	for i, button := range app.toolbarButtons() {
		if i > 0 {
			b.WriteString("  ")
		}
		if button.disabled {
			fmt.Fprintf(&b, "[::d]%s %s[::-]", button.key, button.label)
			continue
		}
		fmt.Fprintf(&b, "[::b]%s[::-] %s", button.key, button.label)
	}
	app.toolbar.SetText(b.String())
}

// updateBottomBar shows the active status message, or the cursor position.
func (app *Application) updateBottomBar() {
	var statusText strings.Builder

	if time.Now().Before(app.confirmationEnd) && app.confirmationMessage != "" {
		pulse := []string{"●", "◐", "◑", "◒", "◓", "○"}
		pulseFrame := (app.animationFrame / pulseCycleFrames) % len(pulse)
		fmt.Fprintf(&statusText, "%s %s", pulse[pulseFrame], tview.Escape(app.confirmationMessage))
	} else {
		app.confirmationMessage = ""
		statusText.WriteString(app.statusLine())
	}

	app.bottomBar.SetText(" " + statusText.String() + " ")
}

func (app *Application) statusLine() string {
	if app.sess.ShowingRaw() {
		if !app.sess.Document().IsJSON {
			return "RAW | not JSON | ? help"
		}
		return "RAW | r formatted | ? help"
	}

	var parts []string
	if app.lineView.Selecting() {
		span := app.lineView.Selection()
		parts = append(parts, fmt.Sprintf("VISUAL %d-%d", span.Start, span.End))
	}
	parts = append(parts, fmt.Sprintf("Ln %d/%d", app.lineView.Cursor(), app.lineView.LineCount()))
	if app.search.Active() {
		parts = append(parts, fmt.Sprintf("/%s %d/%d", tview.Escape(app.search.Query),
			app.search.Position(app.lineView.Cursor()), len(app.search.Matches())))
	}
	if n := app.sess.FoldState().Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d folded", n))
	}
	parts = append(parts, "? help")
	return strings.Join(parts, " | ")
}
