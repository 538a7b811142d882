package monitoring

import "time"

// Monitor reports errors and panics to an external service.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	CapturePanic(v any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any)                          {}
func (NopMonitor) Flush(time.Duration)                       {}

var current Monitor = NopMonitor{}

// Init sets the global monitor implementation. A nil monitor restores the
// no-op default.
func Init(m Monitor) {
	if m == nil {
		m = NopMonitor{}
	}
	current = m
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	current.CaptureException(err, tags)
}

// CapturePanic reports a recovered panic value and flushes buffered events.
// It is meant for deferred handlers that re-panic afterwards:
//
//	defer func() {
//		if r := recover(); r != nil {
//			monitoring.CapturePanic(r)
//			panic(r)
//		}
//	}()
func CapturePanic(v any) {
	current.CapturePanic(v)
	current.Flush(2 * time.Second)
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	current.Flush(d)
}
