package uttt

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// string notation for the ultimate tic tac toe position
// Much like the FEN representation of a chessboard
// Will result in something like this:
//
//	R/R/R/R/R/R/R/R/R <turn> <last move>
//
// where `R` is one row of the 9x9 board, saves the cells
// same as FEN, but instead of chess pieces we have got 'o' and 'x'
// and digits to skip empty cells
//
// <turn> - either 'o' or 'x'
//
// <last move> - the move notation (see Move.String) of the previous move,
// which decides the forced local board, or - if there is none
//
// Examples:
//
// * 9/9/9/9/9/9/9/9/9 x -
//
// * 9/9/9/9/4x4/9/9/9/9 o B2b2
func (p *Position) Notation() string {
	builder := strings.Builder{}

	for rowIndex, row := range p.cells {
		counter := 0
		for _, cell := range row {
			if cell == CellEmpty {
				counter++
				continue
			}

			// Write the counter, and current piece
			if counter > 0 {
				builder.WriteString(fmt.Sprintf("%d", counter))
				counter = 0
			}
			builder.WriteRune(cell.Rune())
		}

		// Check the counter
		if counter > 0 {
			builder.WriteString(fmt.Sprintf("%d", counter))
		}

		if rowIndex != 8 {
			builder.WriteByte('/')
		}
	}

	// Add the turn
	builder.WriteByte(' ')
	if p.toMove == PlayerO {
		builder.WriteByte('o')
	} else {
		builder.WriteByte('x')
	}

	// Add the last move
	builder.WriteByte(' ')
	if p.lastMove.IsNone() {
		builder.WriteByte('-')
	} else {
		builder.WriteString(p.lastMove.String())
	}

	return builder.String()
}

// Create the position from given notation string
func FromNotation(notation string) (*Position, error) {
	pos := NewPosition()
	return pos, pos.FromNotation(notation)
}

// Load the position from given notation string, will reset current state,
// load the cells and recompute the local board results
func (p *Position) FromNotation(notation string) error {
	p.Reset()

	if notation == "startpos" {
		notation = StartingPosition
	}

	fields := strings.Fields(notation)
	if len(fields) != 3 {
		return errors.Errorf("invalid notation structure %q, expected 3 fields, got %d", notation, len(fields))
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != 9 {
		return errors.Errorf("invalid notation structure, expected 9 rows, got %d", len(rows))
	}

	// Loop through the rows
	for r, row := range rows {
		col := 0
		for i, v := range row {
			switch {
			case v == 'x' || v == 'o':
				if col >= 9 {
					return errors.Errorf("too many cells in row %d", r)
				}
				// If that's a piece, put it on the board
				p.cells[r][col] = CellFromRune(v)
				col++
			case '1' <= v && v <= '9':
				// Number, meaning skip given number of cells
				col += int(v - '0')
				if col > 9 {
					return errors.Errorf("invalid number of skip cells in row %d, at index %d", r, i)
				}
			default:
				return errors.Errorf("invalid token %c in row %d, at index %d", v, r, i)
			}
		}
		if col != 9 {
			return errors.Errorf("invalid number of cells in row %d: %d", r, col)
		}
	}

	// Read the side
	switch fields[1] {
	case "x":
		p.toMove = PlayerX
	case "o":
		p.toMove = PlayerO
	default:
		return errors.Errorf("invalid side %q", fields[1])
	}

	// Read the last move
	last, err := MoveFromString(fields[2])
	if err != nil {
		return errors.WithMessage(err, "invalid last move")
	}
	if !last.IsNone() && p.cells[last.Row][last.Col] == CellEmpty {
		return errors.Errorf("last move %s points at an empty cell", last)
	}
	p.lastMove = last

	// Setup the cached state
	p.setupBoardState()
	return nil
}
