package main

import (
	"path/filepath"

	"github.com/gen2brain/beeep"
)

// notifyFunc is beeep.Notify, swappable in tests.
var notifyFunc = beeep.Notify

func initNotifications() {
	beeep.AppName = appTitle
}

// notifyDrop raises a desktop notification for a completed drop. The toast
// is sent from a goroutine so the drag loop is not held up.
func notifyDrop(s DropSummary) {
	title := "Dropped " + s.Text()
	body := ""
	if len(s.Paths) > 0 {
		body = filepath.Base(s.Paths[0])
		if len(s.Paths) > 1 {
			body += " and more"
		}
	}
	send := notifyFunc
	go func() {
		if err := send(title, body, ""); err != nil {
			Log.Warn("desktop notification failed", "error", err)
		}
	}()
}
