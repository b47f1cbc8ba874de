package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/render"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
)

const humanName = "human"

// Reads the moves from the terminal, as "row col" or in move notation (B2b2)
type human struct {
	in *bufio.Scanner
	r  *render.Renderer
}

func newHuman(in io.Reader, r *render.Renderer) *human {
	return &human{in: bufio.NewScanner(in), r: r}
}

func (h *human) Name() string {
	return humanName
}

func (h *human) Play(board uttt.Board, prev uttt.Move, player uttt.Player) (uttt.Move, error) {
	pos, err := uttt.FromBoard(board, prev, player)
	if err != nil {
		return uttt.MoveNone, err
	}
	if err := h.r.Print(pos); err != nil {
		return uttt.MoveNone, err
	}

	for {
		fmt.Printf("%v> ", player)
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return uttt.MoveNone, errors.Wrap(err, "read move")
			}
			return uttt.MoveNone, errors.New("input closed")
		}

		move, err := parseMove(h.in.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		if !pos.IsLegal(move) {
			fmt.Printf("%v is not legal here\n", move)
			continue
		}
		return move, nil
	}
}

func parseMove(text string) (uttt.Move, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 1:
		return uttt.MoveFromString(fields[0])
	case 2:
		row, err1 := strconv.Atoi(fields[0])
		col, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			break
		}
		if m := (uttt.Move{Row: row, Col: col}); m.Valid() {
			return m, nil
		}
	}
	return uttt.MoveNone, errors.Errorf("invalid move %q, expected \"row col\" or notation like B2b2", text)
}
