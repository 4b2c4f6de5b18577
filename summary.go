package main

import (
	"io/fs"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// DropSummary describes the paths of one drop as the user sees them.
type DropSummary struct {
	Paths   []string
	Files   int
	Dirs    int
	Missing int // paths that vanished or could not be read
	Bytes   int64
}

// statFunc is os.Stat, swappable in tests.
var statFunc func(string) (fs.FileInfo, error) = os.Stat

// Summarize stats every path. Directories are counted but not walked.
func Summarize(paths []string) DropSummary {
	s := DropSummary{Paths: paths}
	for _, p := range paths {
		fi, err := statFunc(p)
		switch {
		case err != nil:
			Log.Debug("stat dropped path failed", "path", p, "error", err)
			s.Missing++
		case fi.IsDir():
			s.Dirs++
		default:
			s.Files++
			s.Bytes += fi.Size()
		}
	}
	return s
}

// Text renders the summary the way notifications show it, e.g.
// "3 files, 12 MB" or "1 file, 2 folders, 4.1 kB".
func (s DropSummary) Text() string {
	var parts []string
	if s.Files > 0 {
		parts = append(parts, english.Plural(s.Files, "file", ""))
	}
	if s.Dirs > 0 {
		parts = append(parts, english.Plural(s.Dirs, "folder", ""))
	}
	if s.Missing > 0 {
		parts = append(parts, humanize.Comma(int64(s.Missing))+" unreadable")
	}
	if len(parts) == 0 {
		return "nothing"
	}
	if s.Files > 0 {
		parts = append(parts, humanize.Bytes(uint64(s.Bytes)))
	}
	return strings.Join(parts, ", ")
}
