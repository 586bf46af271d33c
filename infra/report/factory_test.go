package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fuelstats/core/factory"
	corereport "github.com/kilianp07/fuelstats/core/report"
)

func TestSinkFactory_Builtins(t *testing.T) {
	s, err := corereport.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	assert.IsType(t, corereport.NopSink{}, s)

	s, err = corereport.NewSink([]factory.ModuleConfig{
		{Type: "nop"},
		{Type: "prometheus", Conf: map[string]any{"textfile": filepath.Join(t.TempDir(), "fuel.prom")}},
	})
	require.NoError(t, err)
	m, ok := s.(*corereport.MultiSink)
	require.True(t, ok, "expected MultiSink, got %T", s)
	require.Len(t, m.Sinks, 2)
	assert.IsType(t, &PromSink{}, m.Sinks[1])
}

func TestSinkFactory_MQTT(t *testing.T) {
	withMockClient(t, &mockClient{})
	s, err := corereport.NewSink([]factory.ModuleConfig{{Type: "mqtt", Conf: map[string]any{"broker": "tcp://localhost:1883", "qos": "1"}}})
	require.NoError(t, err)
	sink, ok := s.(*MQTTSink)
	require.True(t, ok)
	assert.Equal(t, byte(1), sink.qos)
}

func TestSinkFactory_Errors(t *testing.T) {
	_, err := corereport.NewSink([]factory.ModuleConfig{{Type: "prometheus"}})
	assert.Error(t, err)
	_, err = corereport.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "missing"}})
	assert.Error(t, err)
}
