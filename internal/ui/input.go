package ui

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/cnharrison/jsonview/internal/messaging"
)

// handleInput handles all keyboard input for the application
func (app *Application) handleInput(event *tcell.EventKey) *tcell.EventKey {
	// Modals and the command line get their keys untouched
	if focus := app.app.GetFocus(); app.modalOpen || focus == app.commandInput || focus == app.searchInput {
		return event
	}

	switch event.Key() {
	case tcell.KeyCtrlD:
		app.lineView.PageBy(1)
		app.updateBottomBar()
		return nil
	case tcell.KeyCtrlU:
		app.lineView.PageBy(-1)
		app.updateBottomBar()
		return nil
	case tcell.KeyDown:
		app.lineView.MoveBy(1)
		app.updateBottomBar()
		return nil
	case tcell.KeyUp:
		app.lineView.MoveBy(-1)
		app.updateBottomBar()
		return nil
	case tcell.KeyEnter:
		app.toggleFold(app.lineView.Cursor())
		return nil
	case tcell.KeyEscape:
		if app.lineView.Selecting() {
			app.lineView.ClearSelection()
			app.updateBottomBar()
		}
		return nil
	}

	switch event.Rune() {
	case 'q':
		app.app.Stop()
		return nil
	case '?':
		app.showHelpModal()
		return nil
	case ':':
		app.openCommandLine()
		return nil
	case 'r':
		app.sendMessage(messaging.ToggleJSONView)
		return nil
	case 'o':
		app.sendMessage(messaging.OpenOptions)
		return nil
	case 'c':
		app.copyFormatted()
		return nil
	case 'm':
		app.copyMinified()
		return nil
	case 'M':
		app.copyMarkdown()
		return nil
	case 'd':
		app.download()
		return nil
	case 'e':
		app.editInEditor()
		return nil
	}

	// The rest only makes sense over the formatted lines
	if app.sess.ShowingRaw() {
		return event
	}

	switch event.Rune() {
	case 'j':
		app.lineView.MoveBy(1)
	case 'k':
		app.lineView.MoveBy(-1)
	case 'g':
		app.lineView.Top()
	case 'G':
		app.lineView.Bottom()
	case 'h':
		app.lineView.ScrollColumns(-columnStep)
	case 'l':
		app.lineView.ScrollColumns(columnStep)
	case 'z', ' ':
		app.toggleFold(app.lineView.Cursor())
	case 'C':
		app.collapseAll()
	case 'E':
		app.expandAll()
	case 'v':
		if app.lineView.Selecting() {
			app.lineView.ClearSelection()
		} else {
			app.lineView.StartSelection()
		}
	case 'y':
		app.yankSelection()
	case '/':
		app.openSearch()
	case 'n':
		app.jumpToMatch(true)
	case 'N':
		app.jumpToMatch(false)
	default:
		return event
	}
	app.updateBottomBar()
	return nil
}

// sendMessage routes a message through the bus so key presses and commands
// share one path.
func (app *Application) sendMessage(t messaging.Type) {
	if resp := app.bus.Request(app.ctx, messaging.Message{Type: t}); !resp.Success {
		app.logger.Warn("message failed", "type", t, "err", resp.Error)
		app.showStatusMessage(resp.Error)
	}
}

func (app *Application) openCommandLine() {
	app.commandInput.SetText("")
	app.bottomPages.SwitchToPage(barCommand)
	app.app.SetFocus(app.commandInput)
}

func (app *Application) closeCommandLine() {
	app.bottomPages.SwitchToPage(barStatus)
	app.app.SetFocus(app.pages)
}

// completeCommand offers the bound command names that start with text.
func (app *Application) completeCommand(text string) []string {
	text = strings.TrimSpace(text)
	var entries []string
	for _, name := range app.bus.Commands() {
		if strings.HasPrefix(name, text) {
			entries = append(entries, name)
		}
	}
	return entries
}

func (app *Application) runCommand(key tcell.Key) {
	command := strings.TrimSpace(app.commandInput.GetText())
	app.closeCommandLine()
	if key != tcell.KeyEnter || command == "" {
		return
	}
	if err := app.bus.Dispatch(app.ctx, command); err != nil {
		if errors.Is(err, messaging.ErrNoHandler) {
			app.showStatusMessage("Unknown command: " + command)
			return
		}
		app.logger.Warn("command failed", "command", command, "err", err)
		app.showStatusMessage(err.Error())
	}
}
