package llm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_Fallback(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf)

	ReportFallback(obs, FallbackEvent{Task: TaskFeedback, Reason: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "llm_fallback")
	assert.Contains(t, out, "task=feedback")
	assert.Contains(t, out, "reason=TIMEOUT")
}

func TestReportFallback_IgnoresPlainObservers(t *testing.T) {
	rec := &recordingObserver{}
	assert.NotPanics(t, func() {
		ReportFallback(rec, FallbackEvent{Task: TaskPatientReply, Reason: "UNAVAILABLE"})
	})
	assert.Empty(t, rec.events)
	ReportFallback(nil, FallbackEvent{})
}
