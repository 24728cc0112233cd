package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/cnharrison/jsonview/internal/search"
)

func (app *Application) openSearch() {
	app.searchInput.SetText(app.search.Query)
	app.bottomPages.SwitchToPage(barSearch)
	app.app.SetFocus(app.searchInput)
}

func (app *Application) closeSearch() {
	app.bottomPages.SwitchToPage(barStatus)
	app.app.SetFocus(app.pages)
}

// runSearch finds the entered query and jumps to the first match at or after
// the cursor. An empty query clears the search.
func (app *Application) runSearch(key tcell.Key) {
	query := strings.TrimSpace(app.searchInput.GetText())
	app.closeSearch()
	if key != tcell.KeyEnter {
		return
	}
	if query == "" {
		app.search.Reset()
		app.updateBottomBar()
		return
	}

	app.search.Set(query)
	matches := app.search.Find(app.sess.Document().Lines)
	folded := len(matches) - len(search.IntersectLines(app.lineView.VisibleLines(), matches))
	app.logger.Debug("search", "query", query, "matches", len(matches), "folded", folded)
	if len(matches) == 0 {
		app.showStatusMessage("Pattern not found: " + query)
		return
	}
	line, _ := app.search.Next(app.lineView.Cursor() - 1)
	app.revealMatch(line)
	if folded > 0 {
		app.showStatusMessage(fmt.Sprintf("Match %d/%d, %d in collapsed folds",
			app.search.Position(line), len(matches), folded))
	}
}

// jumpToMatch moves the cursor to the next or previous match.
func (app *Application) jumpToMatch(forward bool) {
	if !app.search.Active() {
		app.showStatusMessage("No search")
		return
	}
	move := app.search.Prev
	if forward {
		move = app.search.Next
	}
	line, ok := move(app.lineView.Cursor())
	if !ok {
		app.showStatusMessage("Pattern not found: " + app.search.Query)
		return
	}
	app.revealMatch(line)
}

// revealMatch opens the folds hiding line and puts the cursor on it.
func (app *Application) revealMatch(line int) {
	if app.sess.RevealLine(line) {
		app.sess.Apply(app.viewer, app.lineView)
	}
	app.lineView.SetCursor(line)
	app.refresh()
	app.showStatusMessage(fmt.Sprintf("Match %d/%d", app.search.Position(line), len(app.search.Matches())))
}
