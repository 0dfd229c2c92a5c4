package voxel

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// DefaultProgressInterval is how many evaluations pass between progress
// log lines.
const DefaultProgressInterval = 100_000

// Observer is notified of every membership evaluation. Mask calls it from
// several goroutines at once.
type Observer interface {
	Evaluated(v Voxel, inside bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(v Voxel, inside bool)

// Evaluated implements Observer.
func (f ObserverFunc) Evaluated(v Voxel, inside bool) { f(v, inside) }

// ProgressLogger counts evaluations and logs a line every interval.
type ProgressLogger struct {
	log      *logrus.Entry
	interval int64

	evaluated atomic.Int64
	inside    atomic.Int64
}

// NewProgressLogger logs to log every interval evaluations. A non-positive
// interval selects DefaultProgressInterval.
func NewProgressLogger(log *logrus.Entry, interval int64) *ProgressLogger {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &ProgressLogger{log: log, interval: interval}
}

// Evaluated implements Observer.
func (p *ProgressLogger) Evaluated(_ Voxel, inside bool) {
	if inside {
		p.inside.Add(1)
	}
	if n := p.evaluated.Add(1); n%p.interval == 0 {
		p.log.WithFields(logrus.Fields{
			"evaluated": n,
			"inside":    p.inside.Load(),
		}).Debug("containment progress")
	}
}

// Evaluations returns the number of evaluations seen so far.
func (p *ProgressLogger) Evaluations() int64 { return p.evaluated.Load() }

// Inside returns the number of evaluations that reported membership.
func (p *ProgressLogger) Inside() int64 { return p.inside.Load() }
