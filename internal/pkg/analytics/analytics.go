// Package analytics decouples the catalog from any concrete event-tracking
// backend. Services report events through the Tracker interface; deployments
// choose what, if anything, listens.
package analytics

import "github.com/rs/zerolog"

// Event kinds emitted by the application.
const (
	EventSearch      = "search"
	EventFilter      = "apply_filter"
	EventPaperView   = "view_paper"
	EventPaperUpload = "upload_paper"
	EventContactSent = "contact_sent"
)

// Tracker receives application events. Implementations must be safe for
// concurrent use and must never fail the caller.
type Tracker interface {
	Event(kind string, payload map[string]any)
}

// NopTracker discards all events.
type NopTracker struct{}

func (NopTracker) Event(string, map[string]any) {}

// LogTracker writes events to the structured log, which is enough for the
// usage questions the site actually asks (what is searched, what is viewed).
type LogTracker struct {
	logger zerolog.Logger
}

// NewLogTracker creates a Tracker backed by the given logger.
func NewLogTracker(logger zerolog.Logger) *LogTracker {
	return &LogTracker{logger: logger}
}

func (t *LogTracker) Event(kind string, payload map[string]any) {
	t.logger.Info().Str("event", kind).Fields(payload).Msg("analytics event")
}
