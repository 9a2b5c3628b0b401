package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeyPass       = "pass_id"
	KeyState      = "state"
	KeySection    = "section"
	KeyMount      = "mount"
	KeySource     = "source"
	KeyKind       = "kind"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyError      = "error"
)

func Pass(id string) slog.Attr        { return slog.String(KeyPass, id) }
func State(s string) slog.Attr        { return slog.String(KeyState, s) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Mount(id string) slog.Attr       { return slog.String(KeyMount, id) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
