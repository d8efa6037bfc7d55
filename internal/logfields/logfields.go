package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyLayout     = "layout"
	KeySlug       = "slug"
	KeyPages      = "pages"
	KeySkipped    = "skipped"
	KeyDurationMS = "duration_ms"
	KeyRepo       = "repository"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func Layout(name string) slog.Attr     { return slog.String(KeyLayout, name) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Skipped(n int) slog.Attr          { return slog.Int(KeySkipped, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Repository(r string) slog.Attr    { return slog.String(KeyRepo, r) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
