package filedrop

import "log/slog"

var logger = slog.Default().With("component", "filedrop")

// SetLogger routes the package's diagnostics to l. A nil l restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l.With("component", "filedrop")
}
