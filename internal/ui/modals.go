package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cnharrison/jsonview/internal/settings"
	"github.com/cnharrison/jsonview/internal/theme"
)

const helpText = `[::b]Navigation[::-]
  j/k, ↑/↓       Move one line
  g/G            First / last line
  Ctrl+D/U       Half page down / up
  h/l            Scroll left / right

[::b]Folding[::-]
  z, Space, Enter  Toggle the fold at or around the cursor
  C / E            Collapse all / expand all
  click ▾ ▸        Toggle a fold with the mouse

[::b]Search[::-]
  /              Search the formatted lines
  n / N          Next / previous match (opens folds as needed)

[::b]Copy & export[::-]
  c              Copy formatted JSON
  m              Copy minified JSON
  M              Copy markdown summary
  v, y           Select lines, copy the selection (y alone copies the line)
  d              Download to the downloads folder
  e              Open in $EDITOR and reload the result

[::b]View[::-]
  r              Toggle raw / formatted
  o              Options (theme, font size)
  :              Run a command
  q              Quit`

// showModal displays p over the layout until closeModal is called.
func (app *Application) showModal(p tview.Primitive, width, height int) {
	app.modalOpen = true
	container := centered(p, width, height)
	app.app.SetRoot(container, true)
	app.app.SetFocus(p)
}

func (app *Application) closeModal() {
	app.modalOpen = false
	app.app.SetRoot(app.layout, true)
	app.app.SetFocus(app.pages)
}

// showHelpModal displays the help modal
func (app *Application) showHelpModal() {
	helpView := tview.NewTextView()
	helpView.SetDynamicColors(true)
	helpView.SetText(helpText)
	helpView.SetBorder(true)
	helpView.SetTitle(" Help ")
	helpView.SetTitleAlign(tview.AlignCenter)
	helpView.SetBorderColor(app.palette.LineNumber)
	helpView.SetBackgroundColor(app.palette.Background)
	helpView.SetTextColor(app.palette.Foreground)

	helpView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape || event.Rune() == '?' {
			app.closeModal()
			return nil
		}
		return event
	})

	app.showModal(helpView, 72, 36)
}

// showOptionsModal displays the settings form. Saved values go through the
// store, whose change notification restyles the viewer.
func (app *Application) showOptionsModal() {
	ids := theme.IDs()
	names := make([]string, len(ids))
	current := 0
	for i, id := range ids {
		names[i] = theme.Get(id).Name
		if id == app.settings.Theme {
			current = i
		}
	}

	form := tview.NewForm()
	form.AddDropDown("Theme", names, current, nil)
	form.AddInputField("Font size (px)", strconv.Itoa(app.settings.FontSize), 6, tview.InputFieldInteger, nil)

	read := func() settings.Settings {
		s := app.settings
		if idx, _ := form.GetFormItemByLabel("Theme").(*tview.DropDown).GetCurrentOption(); idx >= 0 {
			s.Theme = ids[idx]
		}
		if size, err := strconv.Atoi(form.GetFormItemByLabel("Font size (px)").(*tview.InputField).GetText()); err == nil {
			s.FontSize = size
		}
		return s
	}

	form.AddButton("Save", func() {
		if err := app.saveSettings(read()); err != nil {
			app.showStatusMessage(err.Error())
		}
		app.closeModal()
	})
	form.AddButton("Reset", func() {
		if err := app.saveSettings(settings.Defaults()); err != nil {
			app.showStatusMessage(err.Error())
		}
		app.closeModal()
	})
	form.AddButton("Cancel", app.closeModal)
	form.SetCancelFunc(app.closeModal)

	form.SetBorder(true).SetTitle(" Options ").SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(app.palette.LineNumber)
	form.SetBackgroundColor(app.palette.Background)
	form.SetLabelColor(app.palette.Foreground)
	form.SetFieldBackgroundColor(app.palette.Gutter)
	form.SetFieldTextColor(app.palette.Foreground)
	form.SetButtonBackgroundColor(app.palette.Gutter)
	form.SetButtonTextColor(app.palette.Foreground)

	app.showModal(form, 48, 11)
}
