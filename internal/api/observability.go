package api

import "github.com/sirupsen/logrus"

// CallEvent records metadata about a single backend request.
type CallEvent struct {
	Method     string
	Path       string
	RequestID  string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about backend calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a logrus logger.
type LogObserver struct {
	log logrus.FieldLogger
}

// NewLogObserver creates an Observer that logs events to log.
func NewLogObserver(log logrus.FieldLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	entry := o.log.WithFields(logrus.Fields{
		"method":     event.Method,
		"path":       event.Path,
		"request_id": event.RequestID,
		"status":     event.StatusCode,
		"latency_ms": event.LatencyMs,
	})
	if event.Success {
		entry.Debug("api call")
		return
	}
	entry.WithField("error_code", event.ErrorCode).Warn("api call failed")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
