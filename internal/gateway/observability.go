package gateway

import "github.com/rs/zerolog"

// CallEvent records metadata about a single API call.
type CallEvent struct {
	RequestID  string
	Endpoint   Endpoint
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about API calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zerolog logger.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With().Str("component", "gateway").Logger()}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ev := o.logger.Info()
	if !event.Success {
		ev = o.logger.Warn().Str("error_code", event.ErrorCode)
	}
	ev.Str("request_id", event.RequestID).
		Str("endpoint", string(event.Endpoint)).
		Int("status", event.StatusCode).
		Int64("latency_ms", event.LatencyMs).
		Bool("success", event.Success).
		Msg("api_call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
