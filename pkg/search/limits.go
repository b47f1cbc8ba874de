package search

import (
	"encoding/json"
	"math"
	"strings"
)

type Limits struct {
	Depth    int
	Nodes    uint64
	Movetime int // in milliseconds, -1 for no time limit
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int    = 6
	DefaultNodeLimit     uint64 = math.MaxUint64
	DefaultMovetimeLimit int    = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Movetime: DefaultMovetimeLimit,
	}
}

// Set the maximum depth of the search, at least 1
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = max(depth, 1)
	return l
}

// Set the maximum number of nodes engine can visit in a single search
func (l *Limits) SetNodes(nodes uint64) *Limits {
	l.Nodes = nodes
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	return l
}

// Whether a node budget was set
func (l *Limits) NodesSet() bool {
	return l.Nodes != DefaultNodeLimit
}
