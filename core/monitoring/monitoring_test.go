package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordMonitor struct {
	errs    []error
	tags    []map[string]string
	flushed bool
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *recordMonitor) Flush(time.Duration) { r.flushed = true }

func TestInitAndCapture(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	t.Cleanup(func() { Init(NopMonitor{}) })
	Init(nil)

	boom := errors.New("boom")
	CaptureException(boom, map[string]string{"command": "report"})
	Flush(time.Second)

	assert.Equal(t, []error{boom}, mon.errs)
	assert.Equal(t, "report", mon.tags[0]["command"])
	assert.True(t, mon.flushed)
}
