package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fuelstats/core/factory"
)

type recordSink struct {
	published int
	closed    int
	err       error
}

func (r *recordSink) Publish(context.Context, Report) error {
	r.published++
	return r.err
}

func (r *recordSink) Close() error {
	r.closed++
	return r.err
}

func TestMultiSink(t *testing.T) {
	s1, s2 := &recordSink{}, &recordSink{}
	m := NewMultiSink(s1, s2)
	require.NoError(t, m.Publish(context.Background(), Report{}))
	require.NoError(t, m.Close())
	assert.Equal(t, 1, s1.published)
	assert.Equal(t, 1, s2.published)
	assert.Equal(t, 1, s2.closed)
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1, s2 := &recordSink{err: boom}, &recordSink{}
	m := NewMultiSink(s1, s2)
	assert.ErrorIs(t, m.Publish(context.Background(), Report{}), boom)
	assert.Equal(t, 0, s2.published)
	assert.ErrorIs(t, m.Close(), boom)
	assert.Equal(t, 1, s2.closed)
}

func TestNewSinkDefaults(t *testing.T) {
	s, err := NewSink(nil)
	require.NoError(t, err)
	assert.IsType(t, NopSink{}, s)

	_, err = NewSink([]factory.ModuleConfig{{Type: "missing"}})
	assert.Error(t, err)
}
