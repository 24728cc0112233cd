package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// setupUI creates and configures all UI components
func (app *Application) setupUI() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorDefault
	tview.Styles.ContrastBackgroundColor = tcell.ColorDefault

	app.createComponents()
	app.styleComponents()
	app.createLayout()
}

// createComponents initializes all UI components
func (app *Application) createComponents() {
	app.topBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	app.toolbar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	app.buildDocumentViews()

	app.pages = tview.NewPages()
	app.pages.AddPage(pageFormatted, app.lineView, true, !app.sess.ShowingRaw())
	app.pages.AddPage(pageRaw, app.rawView, true, app.sess.ShowingRaw())

	app.bottomBar = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)

	app.commandInput = tview.NewInputField().
		SetLabel(":").
		SetFieldWidth(0)
	app.commandInput.SetAutocompleteFunc(app.completeCommand)
	app.commandInput.SetDoneFunc(app.runCommand)

	app.searchInput = tview.NewInputField().
		SetLabel("/").
		SetFieldWidth(0)
	app.searchInput.SetDoneFunc(app.runSearch)

	app.bottomPages = tview.NewPages()
	app.bottomPages.AddPage(barStatus, app.bottomBar, true, true)
	app.bottomPages.AddPage(barCommand, app.commandInput, true, false)
	app.bottomPages.AddPage(barSearch, app.searchInput, true, false)
}

// buildDocumentViews creates the line surface and raw text view for the
// current session.
func (app *Application) buildDocumentViews() {
	doc := app.sess.Document()
	app.viewer = app.sess.NewViewer()
	app.lineView = NewLineView(doc.Rendered.LineHTML, doc.Folds).
		SetToggleFunc(app.toggleFold)
	app.rawView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	app.rawView.SetText(app.rawText())
	app.sess.Apply(app.viewer, app.lineView)
}

func (app *Application) rawText() string {
	doc := app.sess.Document()
	language := app.formatter.DetectContentType(doc.Original, doc.ContentType)
	return highlightRaw(doc.Original, language, app.themeDef().SyntaxStyle)
}

// styleComponents applies the palette to all components
func (app *Application) styleComponents() {
	p := app.palette
	app.lineView.SetPalette(p)
	app.lineView.SetBorder(true).SetTitle(" JSON ").SetTitleAlign(tview.AlignCenter).SetBorderColor(p.LineNumber)
	app.rawView.SetBackgroundColor(p.Background)
	app.rawView.SetTextColor(p.Foreground)
	app.rawView.SetBorder(true).SetTitle(" Raw ").SetTitleAlign(tview.AlignCenter).SetBorderColor(p.LineNumber)

	app.topBar.SetBackgroundColor(p.Gutter)
	app.topBar.SetTextColor(p.Foreground)
	app.toolbar.SetBackgroundColor(p.Background)
	app.toolbar.SetTextColor(p.LineNumber)
	app.bottomBar.SetBackgroundColor(p.Gutter)
	app.bottomBar.SetTextColor(p.Foreground)
	app.commandInput.SetFieldBackgroundColor(p.Gutter)
	app.commandInput.SetFieldTextColor(p.Foreground)
	app.commandInput.SetLabelColor(p.LineNumber)
	app.searchInput.SetFieldBackgroundColor(p.Gutter)
	app.searchInput.SetFieldTextColor(p.Foreground)
	app.searchInput.SetLabelColor(p.LineNumber)
}
