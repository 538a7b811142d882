package monitoring

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kilianp07/distalg/config"
	coremon "github.com/kilianp07/distalg/core/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *captureTransport) Flush(time.Duration) bool       { return true }
func (c *captureTransport) Configure(sentry.ClientOptions) {}
func (c *captureTransport) Close()                         {}

func (c *captureTransport) SendEvent(ev *sentry.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureTransport) sent() []*sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*sentry.Event(nil), c.events...)
}

func TestNewSentryMonitor_Disabled(t *testing.T) {
	mon, err := NewSentryMonitor(config.MonitoringConfig{})
	require.NoError(t, err)
	_, ok := mon.(coremon.NopMonitor)
	assert.True(t, ok)
}

func TestNewSentryMonitor_BadDSN(t *testing.T) {
	_, err := NewSentryMonitor(config.MonitoringConfig{DSN: "not a dsn"})
	assert.Error(t, err)
}

func TestSentryMonitor_Capture(t *testing.T) {
	tr := &captureTransport{}
	mon, err := newSentryMonitor(config.MonitoringConfig{
		DSN:         "https://public@sentry.example.com/1",
		Environment: "test",
	}, tr)
	require.NoError(t, err)

	mon.CaptureException(nil, nil)
	mon.CaptureException(errors.New("sum of Gamma: scale mismatch"), map[string]string{"scenario": "mismatch", "op": "sum"})
	mon.CapturePanic("bad operand")
	mon.Flush(time.Second)

	events := tr.sent()
	require.Len(t, events, 2)
	ev := events[0]
	assert.Equal(t, "test", ev.Environment)
	assert.Equal(t, "mismatch", ev.Tags["scenario"])
	assert.Equal(t, "sum", ev.Tags["op"])
	require.NotEmpty(t, ev.Exception)
	assert.Equal(t, "sum of Gamma: scale mismatch", ev.Exception[len(ev.Exception)-1].Value)
	assert.Equal(t, "bad operand", events[1].Message)
}
