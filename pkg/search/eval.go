package search

import (
	"math/bits"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Weights of the static evaluation terms, all of them are magnitudes,
// the sign is applied by the evaluation depending on the perspective
type Weights struct {
	LocalWin      float64       `json:"local_win"`
	LocalDraw     float64       `json:"local_draw"`
	Threat        float64       `json:"threat"`
	OppThreat     float64       `json:"opp_threat"`
	Cell          [3][3]float64 `json:"cell"`
	OppCellFactor float64       `json:"opp_cell_factor"`
	MetaWin       float64       `json:"meta_win"`
	MetaThreat    float64       `json:"meta_threat"`
	MetaOppThreat float64       `json:"meta_opp_threat"`
	MetaCenter    float64       `json:"meta_center"`
}

// Symmetric weights, both players are scored the same way
var DefaultWeights = Weights{
	LocalWin:      50,
	LocalDraw:     10,
	Threat:        15,
	OppThreat:     15,
	Cell:          [3][3]float64{{2, 1, 2}, {1, 3, 1}, {2, 1, 2}},
	OppCellFactor: 1,
	MetaWin:       300,
	MetaThreat:    100,
	MetaOppThreat: 100,
	MetaCenter:    20,
}

// Aggressive weights: opponent threats cost more than own threats gain,
// edges are penalized and opponent's meta threats are ignored
var ClassicWeights = Weights{
	LocalWin:      50,
	LocalDraw:     10,
	Threat:        15,
	OppThreat:     20,
	Cell:          [3][3]float64{{2, -2, 2}, {-2, 3, -2}, {2, -2, 2}},
	OppCellFactor: 0.5,
	MetaWin:       300,
	MetaThreat:    100,
	MetaOppThreat: 0,
	MetaCenter:    0,
}

// Score the position with the DefaultWeights
func Evaluate(pos *uttt.Position, perspective uttt.Player) float64 {
	return DefaultWeights.Score(pos, perspective)
}

// Static evaluation of the position from the perspective of given player,
// positive values are good for that player. Deterministic, does not search.
func (w *Weights) Score(pos *uttt.Position, perspective uttt.Player) float64 {
	if !perspective.Valid() {
		return 0
	}

	var score float64
	own := int(perspective) - 1

	for bi := 0; bi < 9; bi++ {
		x, o := pos.Bitboards(bi)
		bbs := [2]uint16{x, o}
		mine, theirs := bbs[own], bbs[1-own]

		switch result := pos.LocalResultAt(bi); result {
		case uttt.LocalUndecided:
			score += w.threats(mine, theirs)
		case uttt.LocalDrawn:
			score -= w.LocalDraw
		default:
			if result.Winner() == perspective {
				score += w.LocalWin
			} else {
				score -= w.LocalWin
			}
		}

		// Positional bias
		for si := 0; si < 9; si++ {
			if mine&(1<<si) != 0 {
				score += w.Cell[si/3][si%3]
			} else if theirs&(1<<si) != 0 {
				score -= w.Cell[si/3][si%3] * w.OppCellFactor
			}
		}
	}

	return score + w.meta(pos, perspective)
}

// Lines with two marks of one player and the third cell empty
func (w *Weights) threats(mine, theirs uint16) float64 {
	var score float64
	occupied := mine | theirs
	for _, mask := range uttt.LineMasks {
		if bits.OnesCount16(occupied&mask) != 2 {
			continue
		}
		switch {
		case bits.OnesCount16(mine&mask) == 2:
			score += w.Threat
		case bits.OnesCount16(theirs&mask) == 2:
			score -= w.OppThreat
		}
	}
	return score
}

// Meta board patterns over the local results
func (w *Weights) meta(pos *uttt.Position, perspective uttt.Player) float64 {
	var score float64
	for _, line := range uttt.Lines() {
		mine, theirs, open := 0, 0, 0
		for _, bi := range line {
			switch result := pos.LocalResultAt(bi); {
			case result == uttt.LocalUndecided:
				open++
			case result == uttt.LocalDrawn:
			case result.Winner() == perspective:
				mine++
			default:
				theirs++
			}
		}

		switch {
		case mine == 3:
			score += w.MetaWin
		case theirs == 3:
			score -= w.MetaWin
		case mine == 2 && open == 1:
			score += w.MetaThreat
		case theirs == 2 && open == 1:
			score -= w.MetaOppThreat
		}
	}

	if center := pos.LocalResultAt(4); center.Decided() && center != uttt.LocalDrawn {
		if center.Winner() == perspective {
			score += w.MetaCenter
		} else {
			score -= w.MetaCenter
		}
	}
	return score
}
