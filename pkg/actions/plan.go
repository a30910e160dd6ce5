package actions

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Plan runs best-effort actions. A failing action is logged as a warning
// and recorded; later actions still run and nothing is rolled back.
type Plan struct {
	log     zerolog.Logger
	onEvent Callback
}

// NewPlan creates a Plan that reports every outcome to onEvent.
func NewPlan(log zerolog.Logger, onEvent Callback) *Plan {
	if onEvent == nil {
		onEvent = NoOpCallback
	}
	return &Plan{log: log, onEvent: onEvent}
}

// Run executes fn as the named action and returns its status.
func (p *Plan) Run(ctx context.Context, name string, fn func(ctx context.Context) error) Status {
	event := Event{Action: name, Status: StatusOK}

	var skip *SkipError
	err := fn(ctx)
	switch {
	case err == nil:
		p.log.Debug().Str("action", name).Msg("Action completed")
	case errors.As(err, &skip):
		event.Status = StatusSkipped
		event.Message = skip.Reason
		p.log.Debug().Str("action", name).Str("reason", event.Message).Msg("Action skipped")
	default:
		event.Status = StatusFailed
		event.Message = err.Error()
		event.Err = err
		p.log.Warn().Err(err).Str("action", name).Msg("Action failed")
	}

	event.Timestamp = time.Now()
	p.onEvent(event)
	return event.Status
}
