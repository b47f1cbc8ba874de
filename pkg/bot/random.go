package bot

import (
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"lukechampine.com/frand"
)

// Plays a uniformly random legal move
type RandomPolicy struct {
	name string
	rng  *frand.RNG
}

// Create a random policy, a nil rng gets a freshly seeded one
func NewRandom(rng *frand.RNG) *RandomPolicy {
	if rng == nil {
		rng = frand.New()
	}
	return &RandomPolicy{name: VeryEasy, rng: rng}
}

func (p *RandomPolicy) Name() string {
	return p.name
}

func (p *RandomPolicy) Play(board uttt.Board, prev uttt.Move, player uttt.Player) (uttt.Move, error) {
	pos, err := position(board, prev, player)
	if err != nil {
		return uttt.MoveNone, err
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return uttt.MoveNone, ErrNoMoves
	}
	return moves[p.rng.Intn(len(moves))], nil
}
