package service

import (
	"time"

	"github.com/sirupsen/logrus"
)

// UseCaseEvent captures lightweight execution telemetry for a controller action.
type UseCaseEvent struct {
	Name     string
	Duration time.Duration
	Success  bool
	Err      error
	Fields   map[string]any
}

// UseCaseObserver receives controller action events.
type UseCaseObserver interface {
	ObserveUseCase(event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(UseCaseEvent) {}

type logUseCaseObserver struct {
	log logrus.FieldLogger
}

// NewLogUseCaseObserver writes action events to a logrus logger.
func NewLogUseCaseObserver(log logrus.FieldLogger) UseCaseObserver {
	if log == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{log: log}
}

func (o *logUseCaseObserver) ObserveUseCase(event UseCaseEvent) {
	fields := logrus.Fields{
		"use_case":    event.Name,
		"duration_ms": event.Duration.Milliseconds(),
		"success":     event.Success,
	}
	for k, v := range event.Fields {
		fields[k] = v
	}
	entry := o.log.WithFields(fields)
	if event.Err != nil {
		entry.WithError(event.Err).Warn("use case failed")
		return
	}
	entry.Info("use case")
}

func observerOrNoop(obs UseCaseObserver) UseCaseObserver {
	if obs == nil {
		return NoopUseCaseObserver{}
	}
	return obs
}
