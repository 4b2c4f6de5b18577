package main

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"), 30)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h := openTestHistory(t)
	base := time.Now()

	first := DropSummary{Paths: []string{`C:\a.txt`}, Files: 1, Bytes: 10}
	second := DropSummary{Paths: []string{`C:\b.txt`, `C:\dir`}, Files: 1, Dirs: 1, Bytes: 2048}
	if _, err := h.Record(first, base.Add(-time.Minute)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := h.Record(second, base); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := h.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if len(got[0].Paths) != 2 || got[0].Paths[1] != `C:\dir` {
		t.Errorf("expected newest drop first, got %+v", got[0])
	}
	if got[0].Dirs != 1 || got[0].Bytes != 2048 {
		t.Errorf("counts not stored: %+v", got[0])
	}
	if got[0].Timestamp.UnixMilli() != base.UnixMilli() {
		t.Errorf("timestamp changed: %v vs %v", got[0].Timestamp, base)
	}

	limited, err := h.Recent(1)
	if err != nil || len(limited) != 1 {
		t.Errorf("expected one record with limit 1, got %d (%v)", len(limited), err)
	}
}

func TestHistory_Prune(t *testing.T) {
	h := openTestHistory(t)
	now := time.Now()
	h.Record(DropSummary{Paths: []string{"old"}}, now.AddDate(0, 0, -40))
	h.Record(DropSummary{Paths: []string{"new"}}, now.AddDate(0, 0, -1))

	n, err := h.Prune(30)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row pruned, got %d", n)
	}
	got, _ := h.Recent(10)
	if len(got) != 1 || got[0].Paths[0] != "new" {
		t.Errorf("wrong rows survived: %+v", got)
	}

	if n, _ := h.Prune(0); n != 0 {
		t.Errorf("non-positive keepDays must not delete, removed %d", n)
	}
}

func TestHistory_PrunedOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := OpenHistory(path, 30)
	if err != nil {
		t.Fatal(err)
	}
	h.Record(DropSummary{Paths: []string{"old"}}, time.Now().AddDate(0, 0, -31))
	h.Close()

	h, err = OpenHistory(path, 30)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	if got, _ := h.Recent(10); len(got) != 0 {
		t.Errorf("expected stale drops pruned on open, got %+v", got)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := openTestHistory(t)
	h.Record(DropSummary{Paths: []string{"x"}}, time.Now())
	if err := h.Clear(); err != nil {
		t.Fatal(err)
	}
	if got, _ := h.Recent(10); len(got) != 0 {
		t.Errorf("expected empty history, got %+v", got)
	}
}
