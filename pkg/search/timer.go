package search

import (
	"time"
)

type _Timer struct {
	start    time.Time
	deadline time.Time
}

func _NewTimer() *_Timer {
	return &_Timer{start: time.Now()}
}

// Check if the deadline has passed, a zero deadline never ends
func (t *_Timer) IsEnd() bool {
	return !t.deadline.IsZero() && !time.Now().Before(t.deadline)
}

func (t *_Timer) IsSet() bool {
	return !t.deadline.IsZero()
}

// Set the 'start' as now
func (t *_Timer) Reset() {
	t.start = time.Now()
}

func (t *_Timer) Start() time.Time {
	return t.start
}

func (t *_Timer) Deadline() time.Time {
	return t.deadline
}

func (t *_Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

func (t *_Timer) SetDeadline(deadline time.Time) {
	t.deadline = deadline
}

// Earlier of the current deadline and now + movetime (in milliseconds),
// a negative movetime leaves the deadline unchanged
func (t *_Timer) Movetime(movetime int) {
	if movetime < 0 {
		return
	}
	d := t.start.Add(time.Duration(movetime) * time.Millisecond)
	if t.deadline.IsZero() || d.Before(t.deadline) {
		t.deadline = d
	}
}
