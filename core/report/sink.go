package report

import (
	"context"
	"errors"

	"github.com/kilianp07/fuelstats/core/factory"
)

// Sink receives a finished report, for example to push it to a metrics
// backend.
type Sink interface {
	Publish(ctx context.Context, r Report) error
	Close() error
}

// NopSink discards reports.
type NopSink struct{}

func (NopSink) Publish(context.Context, Report) error { return nil }
func (NopSink) Close() error                          { return nil }

// MultiSink fans a report out to several sinks in order.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink combines sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// Publish stops at the first failing sink.
func (m *MultiSink) Publish(ctx context.Context, r Report) error {
	for _, s := range m.Sinks {
		if err := s.Publish(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a sink factory identified by name.
func RegisterSink(name string, f factory.Factory[Sink]) error {
	return sinkRegistry.Register(name, f)
}

// NewSink creates a Sink from the configured modules. No configuration yields
// a NopSink, several yield a MultiSink.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]Sink, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			_ = NewMultiSink(sinks...).Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return NewMultiSink(sinks...), nil
}
