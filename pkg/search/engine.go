package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// Score of a won game, a win found with more remaining depth scores higher
const WinScore float64 = 1_000_000

var (
	ErrNotPlayersTurn = errors.New("player is not the side to move")
	ErrNoLegalMoves   = errors.New("no legal moves, the game is over")
)

type Config struct {
	Limits           Limits
	Weights          Weights
	UseTransposition bool
	UseOrdering      bool
	TableSize        int // max transposition table entries, DefaultTableSize if <= 0

	// Break ties between equally scored root moves at random,
	// nil picks the first one in the candidate order.
	// The generator is not synchronized, an engine with it set must not
	// run concurrent searches.
	TieBreak *frand.RNG
}

func DefaultConfig() Config {
	return Config{
		Limits:           *DefaultLimits(),
		Weights:          DefaultWeights,
		UseTransposition: true,
		UseOrdering:      true,
		TableSize:        DefaultTableSize,
	}
}

type Result struct {
	Move       uttt.Move
	Score      float64
	Depth      int
	Nodes      uint64
	TTHits     uint64
	Evaluated  int // number of root moves that were scored
	Candidates int // number of legal root moves
	Elapsed    time.Duration
	StopReason StopReason
}

func (r Result) String() string {
	return fmt.Sprintf("bestmove %v score %.1f depth %d nodes %d tthits %d evaluated %d/%d time %dms stop %v",
		r.Move, r.Score, r.Depth, r.Nodes, r.TTHits, r.Evaluated, r.Candidates,
		r.Elapsed.Milliseconds(), r.StopReason)
}

// Depth-limited minimax with alpha-beta pruning. The engine itself is
// immutable after setup, every search owns a separate SearchContext,
// so a single engine may serve concurrent searches on different positions.
type Engine struct {
	config   Config
	log      zerolog.Logger
	listener Listener
}

func NewEngine(config Config) *Engine {
	if config.Limits.Depth <= 0 {
		config.Limits.Depth = DefaultDepthLimit
	}
	if config.Limits.Nodes == 0 {
		config.Limits.Nodes = DefaultNodeLimit
	}
	return &Engine{
		config: config,
		log:    zerolog.Nop(),
	}
}

func (e *Engine) SetLogger(logger zerolog.Logger) *Engine {
	e.log = logger
	return e
}

func (e *Engine) SetListener(listener Listener) *Engine {
	e.listener = listener
	return e
}

func (e *Engine) Config() Config {
	return e.config
}

// Search using the configured limits only
func (e *Engine) Search(ctx context.Context, pos *uttt.Position) (Result, error) {
	return e.ThinkContext(ctx, pos, pos.ToMove(), time.Time{}, e.config.Limits.Depth)
}

// Choose a move for the player, within the deadline (zero for none) and max depth
func (e *Engine) ChooseMove(pos *uttt.Position, player uttt.Player, deadline time.Time, maxDepth int) (uttt.Move, error) {
	result, err := e.Think(pos, player, deadline, maxDepth)
	if err != nil {
		return uttt.MoveNone, err
	}
	return result.Move, nil
}

func (e *Engine) Think(pos *uttt.Position, player uttt.Player, deadline time.Time, maxDepth int) (Result, error) {
	return e.ThinkContext(context.Background(), pos, player, deadline, maxDepth)
}

// Run the search, the input position is never modified. The search stops early
// when the deadline passes, the node budget is used up or ctx is cancelled,
// a legal move is returned in every such case.
func (e *Engine) ThinkContext(ctx context.Context, pos *uttt.Position, player uttt.Player, deadline time.Time, maxDepth int) (Result, error) {
	if player != pos.ToMove() {
		return Result{}, errors.Wrapf(ErrNotPlayersTurn, "player %v, to move %v", player, pos.ToMove())
	}

	if result := pos.Result(); result != uttt.InProgress {
		return Result{}, errors.Wrapf(ErrNoLegalMoves, "result %v", result)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		panic(fmt.Sprintf("search: no legal moves in a game in progress: %s", pos.Notation()))
	}

	if e.config.UseOrdering {
		moves = OrderMoves(moves)
	}
	maxDepth = max(maxDepth, 1)

	sc := newSearchContext(ctx, e, pos, deadline)
	result := sc.root(moves, maxDepth)

	e.log.Debug().
		Str("move", result.Move.String()).
		Float64("score", result.Score).
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Uint64("tt_hits", result.TTHits).
		Int("evaluated", result.Evaluated).
		Int("candidates", result.Candidates).
		Dur("elapsed", result.Elapsed).
		Str("stop", result.StopReason.String()).
		Msg("search finished")

	e.listener.invokeStop(result)
	return result, nil
}

// Per search state, threaded through the recursion
type SearchContext struct {
	pos      *uttt.Position // private copy, mutated with apply/undo
	player   uttt.Player    // root player, the maximizing side
	limiter  *Limiter
	table    *TranspositionTable // nil when disabled
	weights  *Weights
	ordering bool
	tieBreak *frand.RNG
	listener *Listener
	nodes    uint64
	stopped  bool
}

func newSearchContext(ctx context.Context, e *Engine, pos *uttt.Position, deadline time.Time) *SearchContext {
	limits := e.config.Limits
	limiter := NewLimiter(&limits)
	limiter.SetContext(ctx)
	limiter.Reset(deadline)

	sc := &SearchContext{
		pos:      pos.Clone(),
		player:   pos.ToMove(),
		limiter:  limiter,
		weights:  &e.config.Weights,
		ordering: e.config.UseOrdering,
		tieBreak: e.config.TieBreak,
		listener: &e.listener,
	}
	if e.config.UseTransposition {
		sc.table = NewTranspositionTable(e.config.TableSize)
	}
	return sc
}

func (sc *SearchContext) ok() bool {
	if sc.stopped {
		return false
	}
	sc.stopped = !sc.limiter.Ok(sc.nodes)
	return !sc.stopped
}

// Score every root move, keep the best one
func (sc *SearchContext) root(moves []uttt.Move, maxDepth int) Result {
	result := Result{
		Move:       moves[0],
		Score:      math.Inf(-1),
		Depth:      maxDepth,
		Candidates: len(moves),
	}
	ties := 0

	for i, move := range moves {
		if !sc.ok() {
			break
		}

		// Without random tie breaking, a move has to be strictly better,
		// so the window can start at the best score so far
		alpha := math.Inf(-1)
		if sc.tieBreak == nil && result.Evaluated > 0 {
			alpha = result.Score
		}

		sc.pos.ApplyMove(move)
		sc.nodes++
		score := sc.alphaBeta(maxDepth-1, alpha, math.Inf(1))
		sc.pos.UndoMove()

		// Stopped inside of this subtree, the score is not reliable,
		// unless nothing else was evaluated yet
		if sc.stopped && result.Evaluated > 0 {
			break
		}

		bound := BoundExact
		if score <= alpha {
			bound = BoundUpper
		}

		result.Evaluated++
		switch {
		case score > result.Score:
			result.Move, result.Score = move, score
			ties = 1
		case score == result.Score && sc.tieBreak != nil:
			// Reservoir sampling over the equally scored moves
			ties++
			if sc.tieBreak.Intn(ties) == 0 {
				result.Move = move
			}
		}

		sc.listener.invokeCandidate(CandidateStats{
			Move:    move,
			Score:   score,
			Bound:   bound,
			Index:   i,
			Nodes:   sc.nodes,
			Elapsed: sc.limiter.Elapsed(),
		})
	}

	if result.Evaluated == 0 {
		result.Score = sc.weights.Score(sc.pos, sc.player)
	}
	result.Nodes = sc.nodes
	if sc.table != nil {
		result.TTHits = sc.table.Hits()
	}
	result.Elapsed = sc.limiter.Elapsed()
	result.StopReason = sc.limiter.StopReason()
	return result
}

func (sc *SearchContext) terminalScore(result uttt.GameResult, depth int) float64 {
	switch result.Winner() {
	case sc.player:
		return WinScore + float64(depth)
	case sc.player.Opponent():
		return -WinScore - float64(depth)
	}
	return 0
}

// Minimax with alpha-beta pruning, scores are from the root player's perspective
func (sc *SearchContext) alphaBeta(depth int, alpha, beta float64) float64 {
	if !sc.ok() {
		return sc.weights.Score(sc.pos, sc.player)
	}

	if result := sc.pos.Result(); result != uttt.InProgress {
		return sc.terminalScore(result, depth)
	}

	if depth <= 0 {
		return sc.weights.Score(sc.pos, sc.player)
	}

	alphaOrig, betaOrig := alpha, beta
	var key uttt.Key
	if sc.table != nil {
		key = sc.pos.Key()
		if entry, ok := sc.table.Probe(key); ok && entry.Depth >= depth {
			value := fromTable(entry.Value, depth)
			switch entry.Bound {
			case BoundExact:
				return value
			case BoundLower:
				alpha = max(alpha, value)
			case BoundUpper:
				beta = min(beta, value)
			}
			if alpha >= beta {
				return value
			}
		}
	}

	moves := sc.pos.LegalMoves()
	if sc.ordering {
		moves = OrderMoves(moves)
	}

	maximizing := sc.pos.ToMove() == sc.player
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	for _, move := range moves {
		sc.pos.ApplyMove(move)
		sc.nodes++
		value := sc.alphaBeta(depth-1, alpha, beta)
		sc.pos.UndoMove()

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, value)
		} else {
			best = min(best, value)
			beta = min(beta, value)
		}

		if beta <= alpha || sc.stopped {
			break
		}
	}

	// Values computed after the stop are partial
	if sc.table != nil && !sc.stopped {
		bound := BoundExact
		if best <= alphaOrig {
			bound = BoundUpper
		} else if best >= betaOrig {
			bound = BoundLower
		}
		sc.table.Store(key, toTable(best, depth), depth, bound)
	}

	return best
}
