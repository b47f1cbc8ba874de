// Package bot implements automated players, from a random mover up to
// the alpha-beta search tiers.
package bot

import (
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
)

var ErrNoMoves = errors.New("bot: no legal moves")

// Automated player. Play receives the board by value, the previous move
// (uttt.MoveNone on an empty board) and the player to move for, and returns
// a move for that player. A policy instance belongs to a single game.
type Policy interface {
	Name() string
	Play(board uttt.Board, prev uttt.Move, player uttt.Player) (uttt.Move, error)
}

// Rebuild the position the policy should move in
func position(board uttt.Board, prev uttt.Move, player uttt.Player) (*uttt.Position, error) {
	pos, err := uttt.FromBoard(board, prev, player)
	if err != nil {
		return nil, errors.WithMessage(err, "bot: invalid input")
	}
	return pos, nil
}
