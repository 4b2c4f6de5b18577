package main

import (
	"encoding/json"
	"fmt"

	"webdrop/filedrop"
)

// Event name constants for page events. The page listens with
// window.addEventListener(name, e => e.detail).
const (
	EventDragHover  = "webdrop:hovered"
	EventDragDrop   = "webdrop:dropped"
	EventDragCancel = "webdrop:cancelled"
	EventHistory    = "webdrop:history"   // reply to a "history" message
	EventLogLevel   = "webdrop:log-level" // reply to a "log-level" message
)

// pageEvent is the detail of a DOM CustomEvent pushed into the page.
type pageEvent struct {
	Kind    string   `json:"kind"`
	Paths   []string `json:"paths"`
	Summary string   `json:"summary,omitempty"`
	Bytes   int64    `json:"bytes,omitempty"`
}

func eventName(k filedrop.EventKind) string {
	switch k {
	case filedrop.Hovered:
		return EventDragHover
	case filedrop.Dropped:
		return EventDragDrop
	default:
		return EventDragCancel
	}
}

// dispatchScript renders the JavaScript that raises a CustomEvent called
// name inside the page with detail encoded as JSON.
func dispatchScript(name string, detail any) (string, error) {
	data, err := json.Marshal(detail)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("window.dispatchEvent(new CustomEvent(%s,{detail:%s}));", jsString(name), data), nil
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
