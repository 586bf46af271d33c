package report

import (
	"github.com/kilianp07/fuelstats/core/factory"
	corereport "github.com/kilianp07/fuelstats/core/report"
)

// init registers the builtin report sinks.
func init() {
	_ = corereport.RegisterSink("nop", func(map[string]any) (corereport.Sink, error) {
		return corereport.NopSink{}, nil
	})

	_ = corereport.RegisterSink("prometheus", func(conf map[string]any) (corereport.Sink, error) {
		var c PromConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSink(c)
	})

	_ = corereport.RegisterSink("influx", func(conf map[string]any) (corereport.Sink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	_ = corereport.RegisterSink("mqtt", func(conf map[string]any) (corereport.Sink, error) {
		var c MQTTConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMQTTSink(c)
	})
}
