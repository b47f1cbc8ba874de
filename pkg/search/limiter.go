package search

import (
	"context"
	"time"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt StopReason = 1 // Context cancelled
	StopMovetime  StopReason = 2 // Deadline reached
	StopNodes     StopReason = 4 // Node budget exhausted
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

// Polled by the search on every node, once it reports a stop
// it keeps reporting it until Reset is called
type Limiter struct {
	limits *Limits
	Timer  *_Timer
	reason StopReason
	ctx    context.Context
}

func NewLimiter(limits *Limits) *Limiter {
	if limits == nil {
		limits = DefaultLimits()
	}
	return &Limiter{
		limits: limits,
		Timer:  _NewTimer(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Start measuring time, the effective deadline is the earlier of
// given deadline and the movetime limit (zero deadline means none)
func (l *Limiter) Reset(deadline time.Time) {
	l.Timer.Reset()
	l.Timer.SetDeadline(deadline)
	l.Timer.Movetime(l.limits.Movetime)
	l.reason = StopNone
}

func (l *Limiter) Deadline() time.Time {
	return l.Timer.Deadline()
}

func (l *Limiter) Elapsed() time.Duration {
	return l.Timer.Elapsed()
}

// Wheter the search can continue, given the number of visited nodes
func (l *Limiter) Ok(nodes uint64) bool {
	if l.reason != StopNone {
		return false
	}

	select {
	case <-l.ctx.Done():
		l.reason |= StopInterrupt
	default:
	}

	if l.Timer.IsEnd() {
		l.reason |= StopMovetime
	}

	if l.limits.Nodes <= nodes {
		l.reason |= StopNodes
	}

	return l.reason == StopNone
}

// Get the reason why the search was stopped, StopNone if it finished on it's own
func (l *Limiter) StopReason() StopReason {
	return l.reason
}
