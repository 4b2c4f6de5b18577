package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"webdrop/filedrop"
)

type fakePage struct {
	scripts []string
}

func (p *fakePage) Eval(script string) { p.scripts = append(p.scripts, script) }

type notification struct{ title, body string }

func stubNotify(t *testing.T) chan notification {
	t.Helper()
	ch := make(chan notification, 4)
	prev := notifyFunc
	notifyFunc = func(title, body string, _ any) error {
		ch <- notification{title, body}
		return nil
	}
	t.Cleanup(func() { notifyFunc = prev })
	return ch
}

func newTestApp(t *testing.T) (*DesktopApp, *fakePage) {
	t.Helper()
	app := NewDesktopApp(DefaultConfig())
	page := &fakePage{}
	app.attach(page, nil)
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"), 30)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { h.Close() })
	app.history = h
	return app, page
}

func lastEvent(t *testing.T, page *fakePage) (string, pageEvent) {
	t.Helper()
	if len(page.scripts) == 0 {
		t.Fatal("nothing pushed to the page")
	}
	name, detail := detailOf(t, page.scripts[len(page.scripts)-1])
	var ev pageEvent
	if err := json.Unmarshal(detail, &ev); err != nil {
		t.Fatalf("bad detail: %v", err)
	}
	return name, ev
}

func TestApp_HoverAndCancelOnlyReachThePage(t *testing.T) {
	app, page := newTestApp(t)
	notes := stubNotify(t)

	app.onDrop(hostWindow(1), filedrop.HoveredEvent([]string{"a.bin"}))
	name, ev := lastEvent(t, page)
	if name != EventDragHover || ev.Kind != "hovered" || len(ev.Paths) != 1 {
		t.Errorf("unexpected hover event %s %+v", name, ev)
	}

	app.onDrop(hostWindow(1), filedrop.CancelledEvent())
	name, ev = lastEvent(t, page)
	if name != EventDragCancel || ev.Paths == nil || len(ev.Paths) != 0 {
		t.Errorf("cancel should carry an empty path list, got %s %+v", name, ev)
	}

	if got, _ := app.history.Recent(10); len(got) != 0 {
		t.Errorf("hover recorded in history: %+v", got)
	}
	select {
	case n := <-notes:
		t.Errorf("unexpected notification %+v", n)
	default:
	}
}

func TestApp_DropRecordsAndNotifies(t *testing.T) {
	app, page := newTestApp(t)
	notes := stubNotify(t)
	stubStat(t, map[string]fakeInfo{
		"report.pdf": {name: "report.pdf", size: 2_000_000},
		"data.csv":   {name: "data.csv", size: 1_000_000},
	})
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	app.now = func() time.Time { return at }

	app.onDrop(hostWindow(1), filedrop.DroppedEvent([]string{"report.pdf", "data.csv"}))

	name, ev := lastEvent(t, page)
	if name != EventDragDrop || ev.Summary != "2 files, 3.0 MB" || ev.Bytes != 3_000_000 {
		t.Errorf("unexpected drop event %s %+v", name, ev)
	}

	got, err := app.history.Recent(10)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one history row, got %d (%v)", len(got), err)
	}
	if !got[0].Timestamp.Equal(at) || got[0].Files != 2 {
		t.Errorf("unexpected history row %+v", got[0])
	}

	select {
	case n := <-notes:
		if n.title != "Dropped 2 files, 3.0 MB" || n.body != "report.pdf and more" {
			t.Errorf("unexpected notification %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Error("no notification raised")
	}
}

func TestApp_EmptyDropIsNotRecorded(t *testing.T) {
	app, page := newTestApp(t)
	stubNotify(t)

	app.onDrop(hostWindow(1), filedrop.DroppedEvent(nil))

	if _, ev := lastEvent(t, page); ev.Summary != "nothing" {
		t.Errorf("expected an empty drop to reach the page, got %+v", ev)
	}
	if got, _ := app.history.Recent(10); len(got) != 0 {
		t.Errorf("empty drop recorded: %+v", got)
	}
}

func TestApp_NotificationsOff(t *testing.T) {
	app, _ := newTestApp(t)
	notes := stubNotify(t)
	stubStat(t, map[string]fakeInfo{"a": {name: "a", size: 1}})
	off := false
	app.cfg.Notify = &off

	app.onDrop(hostWindow(1), filedrop.DroppedEvent([]string{"a"}))

	select {
	case n := <-notes:
		t.Errorf("notification raised while disabled: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestApp_HistoryMessages(t *testing.T) {
	app, page := newTestApp(t)
	app.history.Record(DropSummary{Paths: []string{"x"}, Files: 1}, time.Now())

	app.handleMessage("history")
	name, detail := detailOf(t, page.scripts[len(page.scripts)-1])
	var records []DropRecord
	if err := json.Unmarshal(detail, &records); err != nil {
		t.Fatal(err)
	}
	if name != EventHistory || len(records) != 1 || records[0].Paths[0] != "x" {
		t.Errorf("unexpected history reply %s %+v", name, records)
	}

	app.handleMessage("clear-history")
	_, detail = detailOf(t, page.scripts[len(page.scripts)-1])
	if string(detail) != "[]" {
		t.Errorf("expected an empty list after clearing, got %s", detail)
	}

	n := len(page.scripts)
	app.handleMessage("something else")
	if len(page.scripts) != n {
		t.Error("unknown message produced a reply")
	}
}

func TestApp_WithoutPageOrHistory(t *testing.T) {
	app := NewDesktopApp(DefaultConfig())
	stubNotify(t)
	stubStat(t, nil)

	// Must not panic before the webview exists.
	app.onDrop(hostWindow(1), filedrop.DroppedEvent([]string{"gone"}))
	app.handleMessage("history")
	app.installDrop(1, nil)
}

func TestApp_ShutdownKeepsFlagOverridesOutOfConfig(t *testing.T) {
	if err := SaveConfig(DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	cfg := LoadConfig()
	applyFlags(cfg, "http://localhost:5173", "", "")
	cfg.WindowWidth = 1400

	NewDesktopApp(cfg).shutdown()

	saved := LoadConfig()
	if saved.StartURL != "" {
		t.Errorf("flag override persisted: %q", saved.StartURL)
	}
	if saved.WindowWidth != 1400 {
		t.Errorf("window size not saved, got %d", saved.WindowWidth)
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Log
	Log = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { Log = prev })
	return &buf
}

func TestApp_LogLevelMessages(t *testing.T) {
	app, page := newTestApp(t)
	prev := GetLogLevel()
	t.Cleanup(func() { SetLogLevel(prev) })

	app.handleMessage("log-level:debug")
	name, detail := detailOf(t, page.scripts[len(page.scripts)-1])
	if name != EventLogLevel || string(detail) != `"debug"` {
		t.Errorf("unexpected reply %s %s", name, detail)
	}
	if GetLogLevel() != "debug" {
		t.Errorf("expected level debug, got %s", GetLogLevel())
	}

	app.handleMessage("log-level:bogus")
	if GetLogLevel() != "error" {
		t.Errorf("unknown level should fall back to error, got %s", GetLogLevel())
	}

	SetLogLevel("info")
	app.handleMessage(" log-level ")
	_, detail = detailOf(t, page.scripts[len(page.scripts)-1])
	if string(detail) != `"info"` {
		t.Errorf("query should report the current level, got %s", detail)
	}
}

func TestApp_ShutdownLogsClearFailure(t *testing.T) {
	app, _ := newTestApp(t)
	off := false
	app.cfg.SaveHistory = &off
	buf := captureLog(t)

	app.history.db.Close()
	app.shutdown()

	if !strings.Contains(buf.String(), "clearing drop history failed") {
		t.Errorf("clear failure not logged:\n%s", buf.String())
	}
}
