package ui

import (
	"context"
	"time"

	"github.com/cnharrison/jsonview/internal/messaging"
	"github.com/cnharrison/jsonview/internal/settings"
)

// setupEventHandling configures all event handlers
func (app *Application) setupEventHandling() {
	app.bus.Handle(messaging.ToggleJSONView, func(context.Context, messaging.Message) error {
		app.toggleRaw()
		return nil
	})
	app.bus.Handle(messaging.OpenOptions, func(context.Context, messaging.Message) error {
		app.showOptionsModal()
		return nil
	})

	app.unsubscribe = app.store.Subscribe(func(changes settings.Changes) {
		app.app.QueueUpdateDraw(func() {
			app.applySettings(changes)
		})
	})

	app.app.SetInputCapture(app.handleInput)
}

// startAnimationLoop drives the status message pulse until ctx is done.
func (app *Application) startAnimationLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(animationIntervalMs * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.app.QueueUpdateDraw(func() {
					app.animationFrame++
					app.updateBottomBar()
				})
			}
		}
	}()
}
