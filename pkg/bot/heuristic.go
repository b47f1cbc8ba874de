package bot

import (
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"lukechampine.com/frand"
)

// Wins a local board when it can, otherwise blocks the opponent's
// local win, otherwise plays at random
type HeuristicPolicy struct {
	rng *frand.RNG
}

func NewHeuristic(rng *frand.RNG) *HeuristicPolicy {
	if rng == nil {
		rng = frand.New()
	}
	return &HeuristicPolicy{rng: rng}
}

func (p *HeuristicPolicy) Name() string {
	return Easy
}

func (p *HeuristicPolicy) Play(board uttt.Board, prev uttt.Move, player uttt.Player) (uttt.Move, error) {
	pos, err := position(board, prev, player)
	if err != nil {
		return uttt.MoveNone, err
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return uttt.MoveNone, ErrNoMoves
	}

	if m, ok := completingMove(pos, moves, player); ok {
		return m, nil
	}
	if m, ok := completingMove(pos, moves, player.Opponent()); ok {
		return m, nil
	}
	return moves[p.rng.Intn(len(moves))], nil
}

// First move that would complete a line on it's local board for given player
func completingMove(pos *uttt.Position, moves []uttt.Move, player uttt.Player) (uttt.Move, bool) {
	for _, m := range moves {
		x, o := pos.Bitboards(m.BigIndex())
		bb := x
		if player == uttt.PlayerO {
			bb = o
		}
		bb |= 1 << m.SmallIndex()

		for _, mask := range uttt.LineMasks {
			if bb&mask == mask {
				return m, true
			}
		}
	}
	return uttt.MoveNone, false
}
