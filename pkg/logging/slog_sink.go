package logging

import "log/slog"

// SlogSink forwards events to a slog logger, so audit events also show up
// in the regular operational log stream.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink logging at Info level. A nil logger falls back
// to slog.Default.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger.With("component", "audit")}
}

// Write implements Sink.
func (s *SlogSink) Write(event *Event) error {
	attrs := []any{
		"event_type", event.EventType,
		"run", event.RunID,
		"repo", event.Repo,
	}
	if event.Check != "" {
		attrs = append(attrs, "check", event.Check)
	}
	s.logger.Info(event.Summary, attrs...)
	return nil
}

// Close implements Sink.
func (s *SlogSink) Close() error { return nil }
