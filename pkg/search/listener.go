package search

import (
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Statistics of a single scored root move
type CandidateStats struct {
	Move    uttt.Move
	Score   float64
	Bound   Bound // BoundUpper when the move failed low against the best one so far
	Index   int   // position in the (ordered) candidate list
	Nodes   uint64
	Elapsed time.Duration
}

type CandidateFunc func(CandidateStats)
type StopFunc func(Result)

// Listener of the search progress, callbacks are invoked on the
// searching goroutine, so they should return quickly
type Listener struct {
	// called after each root move is scored
	onCandidate CandidateFunc

	// called once the search returns, with the final result
	onStop StopFunc
}

func NewListener() Listener {
	return Listener{}
}

func (listener *Listener) OnCandidate(onCandidate CandidateFunc) *Listener {
	listener.onCandidate = onCandidate
	return listener
}

func (listener *Listener) OnStop(onStop StopFunc) *Listener {
	listener.onStop = onStop
	return listener
}

func (listener *Listener) invokeCandidate(stats CandidateStats) {
	if listener.onCandidate != nil {
		listener.onCandidate(stats)
	}
}

func (listener *Listener) invokeStop(result Result) {
	if listener.onStop != nil {
		listener.onStop(result)
	}
}
