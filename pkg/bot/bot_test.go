package bot

import (
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

func seeded(b byte) *frand.RNG {
	seed := make([]byte, 32)
	seed[0] = b
	return frand.NewCustom(seed, 1024, 12)
}

func boardOf(t *testing.T, notation string) (uttt.Board, uttt.Move, uttt.Player) {
	t.Helper()
	pos, err := uttt.FromNotation(notation)
	require.NoError(t, err)
	last, _ := pos.LastMove()
	return pos.Board(), last, pos.ToMove()
}

func TestNewFallsBackToRandom(t *testing.T) {
	cases := map[string]string{
		VeryEasy:      VeryEasy,
		Easy:          Easy,
		Medium:        Medium,
		Hard:          Hard,
		Ultimate:      Ultimate,
		"Impossible":  Random,
		"":            Random,
		"ultimate":    Random,
		"Very  Easy ": Random,
	}

	for difficulty, name := range cases {
		assert.Equal(t, name, New(difficulty, Options{}).Name(), "difficulty %q", difficulty)
	}

	policy, ok := New(Ultimate, Options{}).(*SearchPolicy)
	require.True(t, ok)
	assert.Equal(t, DefaultTiers()[Ultimate], policy.Tier())
}

func TestTierOverrides(t *testing.T) {
	tier := Tier{Depth: 1, MovetimeMs: 50, Weights: "classic"}
	policy := New(Hard, Options{Tiers: map[string]Tier{Hard: tier}}).(*SearchPolicy)
	assert.Equal(t, tier, policy.Tier())
}

func TestTierValidate(t *testing.T) {
	for name, tier := range DefaultTiers() {
		assert.NoError(t, tier.Validate(), name)
	}
	assert.Error(t, Tier{Depth: 0, MovetimeMs: 10}.Validate())
	assert.Error(t, Tier{Depth: 2, MovetimeMs: 0}.Validate())
	assert.Error(t, Tier{Depth: 2, MovetimeMs: 10, Weights: "aggressive"}.Validate())
}

func TestPoliciesPlayLegalMoves(t *testing.T) {
	fast := map[string]Tier{
		Medium:   {Depth: 2, MovetimeMs: 200, RandomTies: true},
		Hard:     {Depth: 2, MovetimeMs: 200, Transposition: true},
		Ultimate: {Depth: 2, MovetimeMs: 200, Transposition: true, Ordering: true, Weights: "classic"},
	}

	for _, difficulty := range Difficulties {
		t.Run(difficulty, func(t *testing.T) {
			policy := New(difficulty, Options{RNG: seeded(1), Tiers: fast})
			pos := uttt.NewPosition()

			for ply := 0; ply < 12 && pos.Result() == uttt.InProgress; ply++ {
				last, _ := pos.LastMove()
				board := pos.Board()
				move, err := policy.Play(board, last, pos.ToMove())
				require.NoError(t, err)
				assert.Equal(t, board, pos.Board())
				require.NoError(t, pos.MakeLegalMove(move))
			}
		})
	}
}

func TestRandomPolicyIsSeedable(t *testing.T) {
	play := func() []uttt.Move {
		policy := NewRandom(seeded(9))
		pos := uttt.NewPosition()
		for pos.Result() == uttt.InProgress {
			last, _ := pos.LastMove()
			m, err := policy.Play(pos.Board(), last, pos.ToMove())
			require.NoError(t, err)
			require.True(t, pos.ApplyMove(m))
		}
		return pos.History()
	}
	assert.Equal(t, play(), play())
}

func TestHeuristicWinsThenBlocks(t *testing.T) {
	policy := NewHeuristic(seeded(2))

	// x to move in board 0 with a row to complete
	board, last, player := boardOf(t, "xx1o5/9/9/9/4o4/9/9/9/9 x B3a3")
	move, err := policy.Play(board, last, player)
	require.NoError(t, err)
	assert.Equal(t, uttt.Move{Row: 0, Col: 2}, move)

	// o to move in board 0, x threatens the top row, o can't win there
	board, last, player = boardOf(t, "xx7/9/9/9/4o4/9/9/9/9 o A3a3")
	move, err = policy.Play(board, last, player)
	require.NoError(t, err)
	assert.Equal(t, uttt.Move{Row: 0, Col: 2}, move)
}

func TestPolicyRejectsInvalidInput(t *testing.T) {
	var board uttt.Board
	board[0][0] = 5
	_, err := NewRandom(nil).Play(board, uttt.MoveNone, uttt.PlayerX)
	assert.ErrorIs(t, err, uttt.ErrInvalidBoard)

	_, err = New(Hard, Options{}).Play(uttt.Board{}, uttt.MoveNone, uttt.PlayerNone)
	assert.ErrorIs(t, err, uttt.ErrInvalidPlayer)
}

func TestPolicyOnFinishedGame(t *testing.T) {
	pos, err := uttt.FromNotation("xxxxxxxxx/9/9/oo1oo1oo1/9/9/9/9/9 o C3c3")
	require.NoError(t, err)
	require.Equal(t, uttt.WonByX, pos.Result())

	_, err = New(Hard, Options{}).Play(pos.Board(), uttt.Move{Row: 0, Col: 8}, uttt.PlayerO)
	assert.ErrorIs(t, err, ErrNoMoves)
}
