package ui

import (
	"errors"
	"fmt"

	"github.com/cnharrison/jsonview/internal/export"
	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/logging"
	"github.com/cnharrison/jsonview/internal/session"
	"github.com/cnharrison/jsonview/internal/settings"
	"github.com/cnharrison/jsonview/internal/theme"
	"github.com/cnharrison/jsonview/internal/view"
)

// toggleRaw switches between the formatted lines and the raw text.
func (app *Application) toggleRaw() {
	if !app.sess.Document().IsJSON {
		app.showStatusMessage("Not JSON: showing raw text")
		return
	}
	raw := app.sess.ToggleRaw()
	app.lineView.ClearSelection()
	if raw {
		app.pages.SwitchToPage(pageRaw)
	} else {
		app.pages.SwitchToPage(pageFormatted)
	}
	app.logger.Debug("display mode changed", "raw", raw)
	app.refresh()
}

// toggleFold flips the fold owning line, or the innermost fold around it.
func (app *Application) toggleFold(line int) {
	folds := app.sess.Document().Folds
	if _, ok := folds.Lookup(line); !ok {
		r, ok := folds.Enclosing(line)
		if !ok {
			return
		}
		line = r.StartLine
	}
	if !app.sess.ToggleFold(line) {
		return
	}
	app.lineView.SetCursor(line)
	app.applyFolds()
}

func (app *Application) collapseAll() {
	if !app.sess.CollapseAll() {
		app.showStatusMessage("Nothing to collapse")
		return
	}
	app.applyFolds()
}

func (app *Application) expandAll() {
	if !app.sess.ExpandAll() {
		app.showStatusMessage("Nothing to expand")
		return
	}
	app.applyFolds()
}

// applyFolds patches the line view to the session's fold state.
func (app *Application) applyFolds() {
	changed := app.sess.Apply(app.viewer, app.lineView)
	app.lineView.Reveal()
	app.logger.Debug("folds applied", "changed", changed)
	app.refresh()
}

// copyText writes text to the clipboard and reports the outcome in the status bar.
func (app *Application) copyText(text, success string) {
	backend, err := app.clipboard.Write(app.ctx, text)
	if err != nil {
		app.logger.Warn("copy failed", "err", err)
		app.showStatusMessage("Copy failed")
		return
	}
	app.logger.Debug("copied", "backend", backend, "bytes", len(text))
	app.showStatusMessage(success)
}

func (app *Application) copyFormatted() {
	app.copyText(app.sess.CopyText(), "Copied formatted JSON")
}

func (app *Application) copyMinified() {
	app.copyText(app.sess.MinifiedText(), "Copied minified JSON")
}

func (app *Application) copyMarkdown() {
	app.copyText(export.GenerateMarkdownSummary(app.report()), "Copied markdown summary")
}

func (app *Application) report() export.Report {
	doc := app.sess.Document()
	return export.Report{
		Location:    app.location,
		ContentType: doc.ContentType,
		Formatted:   doc.Formatted,
		LineCount:   doc.LineCount(),
		FoldCount:   len(doc.Folds),
		IsJSON:      doc.IsJSON,
	}
}

// yankSelection copies the selected lines, expanding any collapsed fold the
// selection touches to its full text.
func (app *Application) yankSelection() {
	span := app.lineView.Selection()
	app.lineView.ClearSelection()
	text, ok := app.sess.CopySelection([]view.SelectionRange{span})
	if !ok {
		app.showStatusMessage("Nothing to copy")
		app.refresh()
		return
	}
	app.copyText(text, "Copied "+app.formatter.FormatLineCount(format.CountLines(text)))
	app.refresh()
}

func (app *Application) download() {
	path, err := export.Download(app.ctx, app.downloadDir, app.location, app.sess.CopyText())
	if err != nil {
		app.logger.Error("download failed", "err", err)
		app.showStatusMessage("Download failed")
		return
	}
	app.logger.Info("downloaded", logging.FieldPath, path)
	app.showStatusMessage("Downloaded JSON")
}

// editInEditor suspends the viewer, opens the document in $EDITOR and reloads
// it when the edit changed anything.
func (app *Application) editInEditor() {
	doc := app.sess.Document()
	content := app.sess.CopyText()
	if app.sess.ShowingRaw() {
		content = doc.Original
	}
	ext := extensionFor(app.formatter.DetectContentType(doc.Original, doc.ContentType))

	var edited string
	var err error
	app.app.Suspend(func() {
		edited, err = export.OpenInEditor(app.ctx, content, ext)
	})
	if err != nil {
		app.logger.Error("editor failed", "err", err)
		app.showStatusMessage("Editor failed")
		return
	}
	if edited == content {
		return
	}
	app.reload(edited)
	app.showStatusMessage("Reloaded edited document")
}

// reload replaces the document and rebuilds both views.
func (app *Application) reload(body string) {
	doc := session.NewDocument(body, app.sess.Document().ContentType, app.formatter)
	app.sess = session.New(doc, app.formatter)
	app.search.Reset()

	app.buildDocumentViews()
	app.styleComponents()
	app.pages.RemovePage(pageFormatted)
	app.pages.RemovePage(pageRaw)
	app.pages.AddPage(pageFormatted, app.lineView, true, !app.sess.ShowingRaw())
	app.pages.AddPage(pageRaw, app.rawView, true, app.sess.ShowingRaw())
	app.app.SetFocus(app.pages)

	app.logger.Info("document reloaded", logging.FieldLines, doc.LineCount(), logging.FieldFolds, len(doc.Folds))
	app.refresh()
}

func (app *Application) themeDef() theme.Theme {
	return theme.Get(app.settings.Theme)
}

// applySettings reacts to a settings change from the options form or from an
// edit of the settings file.
func (app *Application) applySettings(changes settings.Changes) {
	app.settings = app.settings.Apply(changes).WithDefaults(settings.Defaults())
	if err := app.settings.Validate(); err != nil {
		app.logger.Warn("ignoring invalid settings", "err", err)
		defaults := settings.Defaults()
		if !theme.Exists(app.settings.Theme) {
			app.settings.Theme = defaults.Theme
		}
		if app.settings.FontSize < settings.MinFontSize || app.settings.FontSize > settings.MaxFontSize {
			app.settings.FontSize = defaults.FontSize
		}
	}

	if _, ok := changes[settings.KeyTheme]; ok {
		app.palette = theme.NewPalette(app.themeDef())
		app.rawView.SetText(app.rawText())
		app.styleComponents()
		app.showStatusMessage("Theme: " + app.themeDef().Name)
	}
	if _, ok := changes[settings.KeyFontSize]; ok {
		app.showStatusMessage(fmt.Sprintf("Font size %dpx applies to rendered HTML", app.settings.FontSize))
	}
	app.logger.Debug("settings applied", logging.FieldTheme, app.settings.Theme, logging.FieldFontSize, app.settings.FontSize)
	app.refresh()
}

// saveSettings validates s and writes it to the store; subscribers apply it.
func (app *Application) saveSettings(s settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := app.store.Set(app.ctx, s); err != nil {
		app.logger.Error("save settings failed", "err", err)
		return errors.New("could not save settings")
	}
	return nil
}
