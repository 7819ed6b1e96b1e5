package logging

import (
	"encoding/json"
	"time"

	"github.com/repogate/repogate/internal/errx"
)

// EmitterConfig holds the static metadata configured at gate startup.
// All fields are stamped onto every event automatically.
type EmitterConfig struct {
	// Repo names the repository the gate serves.
	Repo string
}

// Emitter provides convenience methods for emitting typed events.
// It holds static metadata and dispatches to one or more sinks.
//
// A nil *Emitter is safe to hold; callers guard emission with:
//
//	if emitter != nil {
//	    _ = emitter.Emit(...)
//	}
type Emitter struct {
	config EmitterConfig
	sinks  []Sink
}

// NewEmitter creates an emitter with the given configuration and sinks.
func NewEmitter(cfg EmitterConfig, sinks ...Sink) *Emitter {
	return &Emitter{
		config: cfg,
		sinks:  sinks,
	}
}

// Emit constructs an event with the emitter's static metadata and writes
// it to all registered sinks.
//
// Parameters:
//   - runID: the gate run this event belongs to
//   - eventType: one of the Event* constants (e.g., EventPreCommitVerdict)
//   - summary: human-readable one-line summary
//   - check: the emitting check name (empty string if not from a check)
//   - data: the typed data struct (e.g., *PreCommitVerdictData); nil for no payload
//
// Returns the first error encountered. Callers should discard errors
// with _ = (best-effort semantics).
func (e *Emitter) Emit(runID, eventType, summary, check string, data interface{}) error {
	var rawData json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return errx.Wrap(ErrMarshalData, err)
		}
		rawData = b
	}

	event := &Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Repo:      e.config.Repo,
		EventType: eventType,
		Summary:   summary,
		Check:     check,
		Data:      rawData,
	}

	for _, sink := range e.sinks {
		if err := sink.Write(event); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all sinks. Returns the first error encountered.
func (e *Emitter) Close() error {
	var firstErr error
	for _, sink := range e.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
