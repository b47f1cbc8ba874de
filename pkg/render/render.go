// Package render draws positions for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/muesli/termenv"
)

const (
	colorX     = "1" // red
	colorO     = "4" // blue
	colorLegal = "2" // green
)

type Renderer struct {
	out *termenv.Output

	// Print the row and column indexes around the grid
	Coordinates bool
}

// Renderer writing to w, with the color profile detected from w
func New(w io.Writer) *Renderer {
	return &Renderer{out: termenv.NewOutput(w), Coordinates: true}
}

// Renderer with a fixed color profile, termenv.Ascii disables all styling
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, termenv.WithProfile(profile)), Coordinates: true}
}

func (r *Renderer) Print(pos *uttt.Position) error {
	_, err := io.WriteString(r.out, r.Render(pos))
	return err
}

func (r *Renderer) Render(pos *uttt.Position) string {
	var sb strings.Builder

	last, hasLast := pos.LastMove()
	legal := make(map[uttt.Move]bool)
	if !pos.Result().Over() {
		for _, m := range pos.LegalMoves() {
			legal[m] = true
		}
	}

	if r.Coordinates {
		sb.WriteString("   0 1 2   3 4 5   6 7 8\n")
	}
	for row := 0; row < 9; row++ {
		if row > 0 && row%3 == 0 {
			if r.Coordinates {
				sb.WriteString("  ")
			}
			sb.WriteString("-------+-------+------\n")
		}
		if r.Coordinates {
			fmt.Fprintf(&sb, "%d ", row)
		}
		for col := 0; col < 9; col++ {
			if col > 0 && col%3 == 0 {
				sb.WriteString(" |")
			}
			m := uttt.Move{Row: row, Col: col}
			sb.WriteByte(' ')
			sb.WriteString(r.cell(pos, m, hasLast && m == last, legal[m]))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(r.status(pos))
	sb.WriteByte('\n')
	return sb.String()
}

func (r *Renderer) cell(pos *uttt.Position, m uttt.Move, isLast, isLegal bool) string {
	c := pos.Cell(m.Row, m.Col)
	style := r.out.String(string(c.Rune()))

	switch c.Player() {
	case uttt.PlayerX:
		style = style.Foreground(r.out.Color(colorX))
	case uttt.PlayerO:
		style = style.Foreground(r.out.Color(colorO))
	default:
		if isLegal {
			style = style.Foreground(r.out.Color(colorLegal))
		}
	}

	if isLast {
		style = style.Bold().Underline()
	}
	// Cells of decided boards are dimmed
	if pos.LocalResultAt(m.BigIndex()).Decided() {
		style = style.Faint()
	}
	return style.String()
}

func (r *Renderer) status(pos *uttt.Position) string {
	switch result := pos.Result(); result {
	case uttt.Drawn:
		return "Draw"
	case uttt.WonByX, uttt.WonByO:
		return r.out.String(result.Winner().String() + " wins").Bold().String()
	}

	line := pos.ToMove().String() + " to move"
	if big, ok := pos.ForcedBoard(); ok {
		line += fmt.Sprintf(", board %d", big)
	} else {
		line += ", any board"
	}
	return line
}
