package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rivo/tview"

	"github.com/cnharrison/jsonview/internal/export"
	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/logging"
	"github.com/cnharrison/jsonview/internal/messaging"
	"github.com/cnharrison/jsonview/internal/search"
	"github.com/cnharrison/jsonview/internal/session"
	"github.com/cnharrison/jsonview/internal/settings"
	"github.com/cnharrison/jsonview/internal/theme"
	"github.com/cnharrison/jsonview/internal/view"
	"github.com/cnharrison/jsonview/pkg/clipboard"
)

const (
	// Animation and timing constants
	animationIntervalMs      = 500
	statusMessageDurationSec = 3
	pulseCycleFrames         = 2

	pageFormatted = "formatted"
	pageRaw       = "raw"

	barStatus  = "status"
	barCommand = "command"
	barSearch  = "search"
)

// Options configures the viewer's collaborators. Zero values get working
// defaults.
type Options struct {
	Location    string
	Settings    settings.Settings
	Store       settings.Store
	Bus         *messaging.Bus
	Clipboard   *clipboard.Clipboard
	Logger      *log.Logger
	DownloadDir string
}

// Application is the terminal JSON viewer.
type Application struct {
	ctx       context.Context
	sess      *session.Session
	search    *search.State
	viewer    *view.Viewer
	formatter *format.ContentFormatter

	location    string
	title       string
	downloadDir string
	settings    settings.Settings
	palette     theme.Palette

	store     settings.Store
	bus       *messaging.Bus
	clipboard *clipboard.Clipboard
	logger    *log.Logger

	app            *tview.Application
	animationFrame int
	modalOpen      bool
	unsubscribe    func()

	// Confirmation/status messages
	confirmationMessage string
	confirmationEnd     time.Time

	// UI components
	topBar       *tview.TextView
	toolbar      *tview.TextView
	lineView     *LineView
	rawView      *tview.TextView
	pages        *tview.Pages
	bottomBar    *tview.TextView
	commandInput *tview.InputField
	searchInput  *tview.InputField
	bottomPages  *tview.Pages
	layout       *tview.Flex
}

// NewApplication creates a viewer for sess.
func NewApplication(sess *session.Session, formatter *format.ContentFormatter, opts Options) *Application {
	if opts.Store == nil {
		opts.Store = settings.NewMemoryStore(opts.Settings)
	}
	if opts.Bus == nil {
		opts.Bus = messaging.NewBus()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = export.DownloadDir()
	}

	s := opts.Settings.WithDefaults(settings.Defaults())
	return &Application{
		ctx:         context.Background(),
		sess:        sess,
		search:      search.NewState(),
		viewer:      sess.NewViewer(),
		formatter:   formatter,
		location:    opts.Location,
		title:       export.PageTitle(opts.Location),
		downloadDir: opts.DownloadDir,
		settings:    s,
		palette:     theme.NewPalette(theme.Get(s.Theme)),
		store:       opts.Store,
		bus:         opts.Bus,
		clipboard:   opts.Clipboard,
		logger:      opts.Logger,
		app:         tview.NewApplication(),
	}
}

// Run starts the viewer and blocks until it quits or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.ctx = logging.WithLogger(ctx, app.logger)

	app.setupUI()
	app.setupEventHandling()
	defer app.unsubscribe()
	app.startAnimationLoop(ctx)

	go func() {
		<-ctx.Done()
		app.app.Stop()
	}()

	app.logger.Info("viewer started",
		logging.FieldURL, app.location,
		logging.FieldLines, app.sess.Document().LineCount(),
		logging.FieldFolds, len(app.sess.Document().Folds),
		logging.FieldTheme, app.settings.Theme)

	app.refresh()
	return app.app.SetRoot(app.layout, true).EnableMouse(true).Run()
}

// showStatusMessage shows a temporary status message
func (app *Application) showStatusMessage(msg string) {
	app.confirmationMessage = msg
	app.confirmationEnd = time.Now().Add(statusMessageDurationSec * time.Second)
	app.updateBottomBar()
}
