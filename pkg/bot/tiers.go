package bot

import (
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// Difficulty names
const (
	VeryEasy = "Very Easy"
	Easy     = "Easy"
	Medium   = "Medium"
	Hard     = "Hard"
	Ultimate = "Ultimate"
	Random   = "Random"
)

var Difficulties = []string{VeryEasy, Easy, Medium, Hard, Ultimate}

// Search settings of a difficulty
type Tier struct {
	Depth         int    `json:"depth"`
	MovetimeMs    int    `json:"movetime_ms"`
	Transposition bool   `json:"transposition"`
	Ordering      bool   `json:"ordering"`
	Weights       string `json:"weights"` // "default" or "classic"
	RandomTies    bool   `json:"random_ties"`
}

func (t Tier) Movetime() time.Duration {
	return time.Duration(t.MovetimeMs) * time.Millisecond
}

func (t Tier) Validate() error {
	if t.Depth < 1 {
		return errors.Errorf("depth must be at least 1, got %d", t.Depth)
	}
	if t.MovetimeMs <= 0 {
		return errors.Errorf("movetime_ms must be positive, got %d", t.MovetimeMs)
	}
	if _, ok := WeightsByName(t.Weights); !ok {
		return errors.Errorf("unknown weights %q", t.Weights)
	}
	return nil
}

func DefaultTiers() map[string]Tier {
	return map[string]Tier{
		Medium: {
			Depth:      3,
			MovetimeMs: 1000,
			Weights:    "default",
			RandomTies: true,
		},
		Hard: {
			Depth:         5,
			MovetimeMs:    2000,
			Transposition: true,
			Weights:       "default",
		},
		Ultimate: {
			Depth:         6,
			MovetimeMs:    3800,
			Transposition: true,
			Ordering:      true,
			Weights:       "classic",
		},
	}
}

func WeightsByName(name string) (search.Weights, bool) {
	switch name {
	case "", "default":
		return search.DefaultWeights, true
	case "classic":
		return search.ClassicWeights, true
	}
	return search.Weights{}, false
}

type Options struct {
	// nil disables logging
	Logger *zerolog.Logger
	// Random source of the policy, nil for a freshly seeded one
	RNG *frand.RNG
	// Overrides of the DefaultTiers
	Tiers map[string]Tier
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// Create a policy for the difficulty, unknown names fall back to a random mover
func New(difficulty string, opts Options) Policy {
	switch difficulty {
	case VeryEasy:
		return NewRandom(opts.RNG)
	case Easy:
		return NewHeuristic(opts.RNG)
	}

	tier, ok := opts.Tiers[difficulty]
	if !ok {
		tier, ok = DefaultTiers()[difficulty]
	}
	if !ok {
		opts.logger().Debug().Str("difficulty", difficulty).Msg("unknown difficulty, playing random moves")
		policy := NewRandom(opts.RNG)
		policy.name = Random
		return policy
	}
	return NewSearchPolicy(difficulty, tier, opts)
}

// Plays the best move found by the alpha-beta search
type SearchPolicy struct {
	name     string
	tier     Tier
	engine   *search.Engine
	lastInfo search.Result
}

func NewSearchPolicy(name string, tier Tier, opts Options) *SearchPolicy {
	config := search.DefaultConfig()
	config.Limits.SetDepth(tier.Depth).SetMovetime(tier.MovetimeMs)
	config.UseTransposition = tier.Transposition
	config.UseOrdering = tier.Ordering
	config.Weights, _ = WeightsByName(tier.Weights)
	if tier.RandomTies {
		config.TieBreak = opts.RNG
		if config.TieBreak == nil {
			config.TieBreak = frand.New()
		}
	}

	logger := opts.logger().With().Str("bot", name).Logger()
	return &SearchPolicy{
		name:   name,
		tier:   tier,
		engine: search.NewEngine(config).SetLogger(logger),
	}
}

func (p *SearchPolicy) Name() string {
	return p.name
}

func (p *SearchPolicy) Tier() Tier {
	return p.tier
}

// Statistics of the last search
func (p *SearchPolicy) LastResult() search.Result {
	return p.lastInfo
}

func (p *SearchPolicy) Play(board uttt.Board, prev uttt.Move, player uttt.Player) (uttt.Move, error) {
	pos, err := position(board, prev, player)
	if err != nil {
		return uttt.MoveNone, err
	}

	deadline := time.Now().Add(p.tier.Movetime())
	result, err := p.engine.Think(pos, player, deadline, p.tier.Depth)
	if err != nil {
		if errors.Is(err, search.ErrNoLegalMoves) {
			return uttt.MoveNone, errors.WithMessage(ErrNoMoves, err.Error())
		}
		return uttt.MoveNone, err
	}

	p.lastInfo = result
	return result.Move, nil
}
