package ui

import (
	"github.com/rivo/tview"
)

// createLayout builds the main application layout
func (app *Application) createLayout() {
	app.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.topBar, 1, 0, false).
		AddItem(app.toolbar, 1, 0, false).
		AddItem(app.pages, 0, 1, true).
		AddItem(app.bottomPages, 1, 0, false)
}

// centered wraps p in spacers so it floats in the middle of the screen.
func centered(p tview.Primitive, width, height int) *tview.Flex {
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(p, width, 0, true).
			AddItem(nil, 0, 1, false),
			height, 0, true).
		AddItem(nil, 0, 1, false)
}
