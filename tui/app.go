package tui

import (
	"context"
	"os"
	"sync"
	"time"

	"codeberg.org/tslocum/cview"
	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/properties"
	"go.uber.org/zap"
)

type Option func(*App)

func WithTheme(name string) Option {
	return func(a *App) {
		a.themeName, a.currentTheme = lookupTheme(name)
	}
}

// WithHomeTilde shows paths below the home directory as ~/...
func WithHomeTilde(enabled bool) Option {
	return func(a *App) {
		a.replaceHome = enabled
	}
}

// WithErrorLinger sets how long the window stays up to show a failed
// rename before it closes.
func WithErrorLinger(d time.Duration) Option {
	return func(a *App) {
		a.errorLinger = d
	}
}

func WithDialogOptions(opts ...properties.DialogOption) Option {
	return func(a *App) {
		a.dialogOpts = append(a.dialogOpts, opts...)
	}
}

// App renders one Properties dialog in the terminal.
type App struct {
	app     *cview.Application
	dialog  *properties.Dialog
	general *properties.General

	header    *cview.TextView
	footer    *cview.TextView
	nameField *cview.InputField
	form      *cview.Form
	table     *cview.Table
	layout    *cview.Flex

	uiUpdates chan func()

	userHomeDir string
	replaceHome bool

	themeName    string
	currentTheme Theme

	dialogOpts []properties.DialogOption

	// stop ends the application; errorLinger delays it after a failure
	stop        func()
	errorLinger time.Duration

	mu      sync.Mutex
	lastErr error
}

const defaultErrorLinger = 2 * time.Second

func NewApp(general *properties.General, committer *properties.Committer, opts ...Option) *App {
	themeName, theme := lookupTheme(defaultThemeName)
	a := &App{
		app:          cview.NewApplication(),
		general:      general,
		uiUpdates:    make(chan func(), 128),
		themeName:    themeName,
		currentTheme: theme,
		errorLinger:  defaultErrorLinger,
	}
	a.stop = a.app.Stop
	for _, opt := range opts {
		opt(a)
	}

	if home, err := os.UserHomeDir(); err == nil {
		a.userHomeDir = home
	} else {
		logging.L().Warn("no home directory, paths shown as is", zap.Error(err))
	}

	dialogOpts := append([]properties.DialogOption{
		properties.WithNotifier(properties.NotifierFunc(a.notify)),
	}, a.dialogOpts...)
	a.dialog = properties.NewDialog(general, committer, properties.CloserFunc(a.closeWindow), dialogOpts...)

	a.header = cview.NewTextView()
	a.header.SetDynamicColors(true)
	a.header.SetTextAlign(cview.AlignCenter)
	a.header.SetText(headerTitle(general.Name()))

	a.footer = cview.NewTextView()
	a.footer.SetDynamicColors(true)
	a.footer.SetText(footerStatusMenu())

	a.nameField = cview.NewInputField()
	a.nameField.SetLabel("Name: ")
	a.nameField.SetText(general.Name())

	a.form = cview.NewForm()
	a.form.AddFormItem(a.nameField)
	a.form.AddButton("OK", a.confirm)
	a.form.AddButton("Cancel", a.cancel)
	a.form.SetCancelFunc(a.cancel)

	a.table = cview.NewTable()
	a.table.SetBorder(false)
	a.table.SetBorders(false)
	a.table.SetSelectable(false, false)
	a.table.SetSeparator(' ')

	a.layout = cview.NewFlex()
	a.layout.SetDirection(cview.FlexRow)
	a.layout.AddItem(a.header, 1, 0, false)
	a.layout.AddItem(a.form, 5, 0, true)
	a.layout.AddItem(a.table, 0, 1, false)
	a.layout.AddItem(a.footer, 1, 0, false)

	a.app.SetInputCapture(a.handleInput)
	a.app.SetRoot(a.layout, true)

	a.applyTheme()
	a.buildTable()

	return a
}

func (a *App) Dialog() *properties.Dialog {
	return a.dialog
}

// LastErr is the last failure shown in the footer, such as a rejected rename.
func (a *App) LastErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

func (a *App) confirm() {
	name := a.nameField.GetText()
	_ = a.dialog.Confirm(name)
}

func (a *App) cancel() {
	a.dialog.Cancel()
}

// notify records err and shows it; the window may be closing already.
func (a *App) notify(err error) {
	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()
	a.footer.SetText(footerStatusError(&a.currentTheme, err))
}

// closeWindow stops the app. After a failed rename the stop waits
// errorLinger so the event loop gets to draw the footer.
func (a *App) closeWindow(_ string) {
	if a.LastErr() == nil || a.errorLinger <= 0 {
		a.stop()
		return
	}
	time.AfterFunc(a.errorLinger, a.stop)
}

// Run opens the dialog and blocks until it is closed.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logging.L().Debug("starting dialog", zap.String("theme", a.themeName), zap.String("dialog_id", a.dialog.ID))
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case updateFn := <-a.uiUpdates:
				a.app.QueueUpdateDraw(updateFn)
			}
		}
	}()

	a.dialog.Open(ctx)
	if agg := a.general.Aggregator(); agg != nil {
		go a.processProgressEvents(ctx, agg)
	}

	err := a.app.Run()
	// Ctrl-C and friends end the app without going through the dialog
	a.dialog.Cancel()
	return err
}
