package main

import (
	_ "embed"
	"strings"
	"time"

	"webdrop/filedrop"
)

//go:embed frontend/index.html
var indexHTML string

// Page is the embedded document the app pushes events into.
type Page interface {
	Eval(script string)
}

// hostWindow is the top-level window the webview is embedded in.
type hostWindow filedrop.Handle

func (w hostWindow) Handle() filedrop.Handle { return filedrop.Handle(w) }

// DesktopApp ties the drop interceptor to the page, history and
// notifications.
type DesktopApp struct {
	cfg        *AppConfig
	page       Page
	history    *History
	controller *filedrop.Controller
	now        func() time.Time
}

// NewDesktopApp creates a new DesktopApp instance.
func NewDesktopApp(cfg *AppConfig) *DesktopApp {
	return &DesktopApp{cfg: cfg, now: time.Now}
}

// startup opens the history database and prepares notifications. Failures
// are logged and the app runs without the feature.
func (a *DesktopApp) startup() {
	initNotifications()

	if !a.cfg.IsSaveHistory() {
		return
	}
	h, err := OpenHistory(DataPath("history.db"), a.cfg.HistoryDays)
	if err != nil {
		Log.Error("drop history unavailable", "error", err)
		return
	}
	a.history = h
}

// attach binds the page and the drop controller once the webview exists.
func (a *DesktopApp) attach(page Page, controller *filedrop.Controller) {
	a.page = page
	a.controller = controller
}

// installDrop puts the interceptor on the webview's child windows. It is
// safe to call again after each navigation.
func (a *DesktopApp) installDrop(root filedrop.Handle, delegates filedrop.DelegateSource) {
	if a.controller == nil {
		return
	}
	a.controller.Install(root, hostWindow(root), delegates, a.onDrop)
	Log.Info("drop interception active", "windows", len(a.controller.Installed()))
}

// onDrop is the filedrop callback. It runs on the UI thread inside the OLE
// drag loop, so only drops do file system work.
func (a *DesktopApp) onDrop(w filedrop.Window, ev filedrop.DropEvent) bool {
	Log.Debug("drag event", "kind", ev.Kind, "paths", len(ev.Paths), "hwnd", w.Handle())

	pe := pageEvent{Kind: ev.Kind.String(), Paths: ev.Paths}
	if pe.Paths == nil {
		pe.Paths = []string{}
	}
	if ev.Kind != filedrop.Dropped {
		a.emit(eventName(ev.Kind), pe)
		return true
	}

	s := Summarize(ev.Paths)
	pe.Summary = s.Text()
	pe.Bytes = s.Bytes
	a.emit(EventDragDrop, pe)

	if len(ev.Paths) == 0 {
		return true
	}
	Log.Info("files dropped", "count", len(ev.Paths), "summary", pe.Summary)
	if a.history != nil {
		if _, err := a.history.Record(s, a.now()); err != nil {
			Log.Error("recording drop failed", "error", err)
		}
	}
	if a.cfg.IsNotify() {
		notifyDrop(s)
	}
	return true
}

func (a *DesktopApp) emit(name string, detail any) {
	if a.page == nil {
		return
	}
	script, err := dispatchScript(name, detail)
	if err != nil {
		Log.Error("encoding page event failed", "event", name, "error", err)
		return
	}
	a.page.Eval(script)
}

// Messages the page can post through window.chrome.webview.postMessage.
const (
	msgHistory      = "history"
	msgClearHistory = "clear-history"
	msgLogLevel     = "log-level" // "log-level" or "log-level:debug"
)

// handleMessage answers a message posted by the page.
func (a *DesktopApp) handleMessage(msg string) {
	msg = strings.TrimSpace(msg)
	if name, level, ok := strings.Cut(msg, ":"); ok && name == msgLogLevel {
		SetLogLevel(level)
		Log.Info("log level changed", "level", GetLogLevel())
		msg = msgLogLevel
	}
	switch msg {
	case msgLogLevel:
		a.emit(EventLogLevel, GetLogLevel())
	case msgHistory:
		a.sendHistory()
	case msgClearHistory:
		if a.history != nil {
			if err := a.history.Clear(); err != nil {
				Log.Error("clearing drop history failed", "error", err)
			}
		}
		a.sendHistory()
	default:
		Log.Debug("ignoring page message", "message", msg)
	}
}

func (a *DesktopApp) sendHistory() {
	if a.page == nil {
		return
	}
	records := []DropRecord{}
	if a.history != nil {
		r, err := a.history.Recent(50)
		if err != nil {
			Log.Error("reading drop history failed", "error", err)
		} else if r != nil {
			records = r
		}
	}
	a.emit(EventHistory, records)
}

// shutdown closes the controller, then the history, then saves the window
// size.
func (a *DesktopApp) shutdown() {
	if a.controller != nil {
		a.controller.Close()
	}
	if a.history != nil {
		if !a.cfg.IsSaveHistory() {
			if err := a.history.Clear(); err != nil {
				Log.Error("clearing drop history failed", "error", err)
			}
		}
		if err := a.history.Close(); err != nil {
			Log.Error("closing drop history failed", "error", err)
		}
		a.history = nil
	}
	a.saveWindowSize()
}

// saveWindowSize persists the window size. Only the size is taken from the
// running config so command-line overrides are not written back.
func (a *DesktopApp) saveWindowSize() {
	saved := LoadConfig()
	saved.WindowWidth = a.cfg.WindowWidth
	saved.WindowHeight = a.cfg.WindowHeight
	if err := SaveConfig(saved); err != nil {
		Log.Error("saving config failed", "error", err)
	}
}
