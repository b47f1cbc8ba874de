package arena

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
)

// A game lost without being played out
type ForfeitError struct {
	Player uttt.Player
	Name   string
	Move   uttt.Move // the offending move, MoveNone if the policy failed
	Ply    int
	Reason error
}

func (e *ForfeitError) Error() string {
	return fmt.Sprintf("%s (%v) forfeits at ply %d: %v", e.Name, e.Player, e.Ply, e.Reason)
}

func (e *ForfeitError) Unwrap() error {
	return e.Reason
}

type GameRecord struct {
	Moves   []uttt.Move
	Result  uttt.GameResult
	Forfeit *ForfeitError // nil when the game was played out
}

func (r GameRecord) Outcome() GameOutcome {
	switch {
	case r.Result == uttt.Drawn:
		return GameOutcome{IsDraw: true}
	default:
		return GameOutcome{FirstPlayerWon: r.Result.Winner() == uttt.PlayerX}
	}
}

// Called after every move of a game
type MoveFunc func(pos *uttt.Position, move uttt.Move)

// Play a single game from the empty board, first plays X. A policy that
// returns an error, panics or plays an illegal move loses the game.
// Returns ctx.Err() if the context is done before the game ends.
func PlayGame(ctx context.Context, first, second bot.Policy, onMove MoveFunc) (GameRecord, error) {
	pos := uttt.NewPosition()
	policies := [2]bot.Policy{first, second}

	for pos.Result() == uttt.InProgress {
		select {
		case <-ctx.Done():
			return GameRecord{Moves: pos.History(), Result: uttt.InProgress}, ctx.Err()
		default:
		}

		player := pos.ToMove()
		policy := policies[int(player)-1]
		last, _ := pos.LastMove()

		move, err := safePlay(policy, pos.Board(), last, player)
		if err == nil && !pos.ApplyMove(move) {
			err = errors.Wrapf(uttt.ErrIllegalMove, "%v", move)
		}

		if err != nil {
			return GameRecord{
				Moves:  pos.History(),
				Result: wonBy(player.Opponent()),
				Forfeit: &ForfeitError{
					Player: player,
					Name:   policy.Name(),
					Move:   move,
					Ply:    pos.Ply(),
					Reason: err,
				},
			}, nil
		}

		if onMove != nil {
			onMove(pos, move)
		}
	}

	return GameRecord{Moves: pos.History(), Result: pos.Result()}, nil
}

func safePlay(policy bot.Policy, board uttt.Board, last uttt.Move, player uttt.Player) (move uttt.Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			move, err = uttt.MoveNone, errors.Errorf("panic: %v", r)
		}
	}()
	return policy.Play(board, last, player)
}

func wonBy(p uttt.Player) uttt.GameResult {
	if p == uttt.PlayerX {
		return uttt.WonByX
	}
	return uttt.WonByO
}
