package authkit

import "sync/atomic"

// MetricID defines a public type used by authkit APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the credential engine.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the credential engine.
	MetricLoginFailure
	// MetricReissueSuccess is an exported constant or variable used by the credential engine.
	MetricReissueSuccess
	// MetricReissueFailure is an exported constant or variable used by the credential engine.
	MetricReissueFailure
	// MetricRegisterSuccess is an exported constant or variable used by the credential engine.
	MetricRegisterSuccess
	// MetricRegisterDuplicate is an exported constant or variable used by the credential engine.
	MetricRegisterDuplicate
	// MetricRegisterFailure is an exported constant or variable used by the credential engine.
	MetricRegisterFailure
	// MetricOTPSendSuccess is an exported constant or variable used by the credential engine.
	MetricOTPSendSuccess
	// MetricOTPSendFailure is an exported constant or variable used by the credential engine.
	MetricOTPSendFailure
	// MetricOTPVerifySuccess is an exported constant or variable used by the credential engine.
	MetricOTPVerifySuccess
	// MetricOTPVerifyFailure is an exported constant or variable used by the credential engine.
	MetricOTPVerifyFailure
	// MetricAuthorizeSuccess is an exported constant or variable used by the credential engine.
	MetricAuthorizeSuccess
	// MetricAuthorizeFailure is an exported constant or variable used by the credential engine.
	MetricAuthorizeFailure
	// MetricPasswordUpgrade is an exported constant or variable used by the credential engine.
	MetricPasswordUpgrade

	metricCount
)

// Metrics defines a public type used by authkit APIs.
//
// Counters are plain atomics; Inc is safe on the request path and Snapshot
// is a point-in-time copy with no lock held across reads.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// MetricsSnapshot defines a public type used by authkit APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricCount),
	}
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricCount; id++ {
		snapshot.Counters[id] = m.counters[id].Load()
	}
	return snapshot
}
