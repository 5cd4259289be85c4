package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyPageID     = "page_id"
	KeyCategory   = "category"
	KeyChunkID    = "chunk_id"
	KeyBatch      = "batch"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyRunID      = "run_id"
	KeyURL        = "url"
	KeyScore      = "score"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func PageID(id string) slog.Attr      { return slog.String(KeyPageID, id) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func ChunkID(id string) slog.Attr     { return slog.String(KeyChunkID, id) }
func Batch(n int) slog.Attr           { return slog.Int(KeyBatch, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Score(s float64) slog.Attr       { return slog.Float64(KeyScore, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
