package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyRevision   = "revision"
	KeyRepo       = "repository"
	KeyPath       = "path"
	KeyRenderID   = "render_id"
	KeyBytes      = "bytes"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Revision(rev string) slog.Attr    { return slog.String(KeyRevision, rev) }
func Repository(r string) slog.Attr    { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func RenderID(id string) slog.Attr     { return slog.String(KeyRenderID, id) }
func Bytes(n int64) slog.Attr          { return slog.Int64(KeyBytes, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
