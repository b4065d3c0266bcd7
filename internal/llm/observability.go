package llm

import (
	"io"
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one structured line per LLM call.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
	}
	if !event.Success {
		o.logger.Warn("llm_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("llm_call", attrs...)
}

// FallbackEvent records a task answered without the model.
type FallbackEvent struct {
	Task   TaskType
	Reason string
}

// FallbackObserver is implemented by observers that also track fallbacks.
type FallbackObserver interface {
	OnFallback(event FallbackEvent)
}

// ReportFallback forwards event to o if o tracks fallbacks.
func ReportFallback(o Observer, event FallbackEvent) {
	if fo, ok := o.(FallbackObserver); ok {
		fo.OnFallback(event)
	}
}

func (o *LogObserver) OnFallback(event FallbackEvent) {
	o.logger.Warn("llm_fallback", "task", event.Task, "reason", event.Reason)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
