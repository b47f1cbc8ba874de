package arena

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

/*
Arena, plays a series of games between two policies. Every game gets
fresh policy instances from the factories, the first mover alternates
between the games.
*/

type Factory func() bot.Policy

type VersusArena struct {
	VersusArenaStats
	Player1 Factory
	Player2 Factory
	NGames  int
	Workers int

	ctx         context.Context
	log         zerolog.Logger
	mu          sync.Mutex
	forfeitErrs *multierror.Error
}

func NewVersusArena(player1, player2 Factory) *VersusArena {
	return &VersusArena{
		Player1: player1,
		Player2: player2,
		NGames:  100,
		Workers: 2,
		ctx:     context.Background(),
		log:     zerolog.Nop(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) WithLogger(logger zerolog.Logger) *VersusArena {
	va.log = logger
	return va
}

func (va *VersusArena) Setup(nGames, workers int) *VersusArena {
	va.NGames = max(nGames, 0)
	va.Workers = max(workers, 1)
	return va
}

// Reasons of every forfeited game so far, nil if there were none
func (va *VersusArena) ForfeitErrors() error {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.forfeitErrs.ErrorOrNil()
}

// Play all of the games, blocks until they are finished or the context is done.
// Returns the context's error in the latter case, the summary covers the finished games.
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener{}
	}

	p1Name, p2Name := va.Player1().Name(), va.Player2().Name()
	g, ctx := errgroup.WithContext(va.ctx)
	g.SetLimit(max(va.Workers, 1))

	for i := 0; i < va.NGames; i++ {
		if ctx.Err() != nil {
			break
		}

		game := i
		g.Go(func() error {
			return va.playOne(ctx, game, p1Name, p2Name, listener)
		})
	}

	err := g.Wait()
	if err == nil {
		err = va.ctx.Err()
	}

	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Forfeits:         va.Forfeits(),
		Workers:          va.Workers,
		P1Name:           p1Name,
		P2Name:           p2Name,
	}
	listener.Summary(summary)
	return summary, err
}

func (va *VersusArena) playOne(ctx context.Context, game int, p1Name, p2Name string, listener ListenerLike) error {
	p1, p2 := va.Player1(), va.Player2()
	p1First := game%2 == 0
	first, second := p1, p2
	if !p1First {
		first, second = p2, p1
	}

	info := VersusGameInfo{
		Game:    game,
		NGames:  va.NGames,
		P1First: p1First,
		P1Name:  p1Name,
		P2Name:  p2Name,
	}

	record, err := PlayGame(ctx, first, second, func(pos *uttt.Position, _ uttt.Move) {
		info.Moves = pos.History()
		info.FinishedGames = va.Total()
		listener.OnMoveMade(info)
	})
	if err != nil {
		return errors.WithMessagef(err, "game %d", game+1)
	}

	outcome := record.Outcome()
	result := toAgentResult(outcome, p1First)
	switch result {
	case VersusDraw:
		atomic.AddUint32(&va.draws, 1)
	case VersusPl1Win:
		atomic.AddUint32(&va.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&va.p2Wins, 1)
	}
	if !outcome.IsDraw {
		if outcome.FirstPlayerWon {
			atomic.AddUint32(&va.firstToMoveWins, 1)
		} else {
			atomic.AddUint32(&va.secondToMoveWins, 1)
		}
	}

	if record.Forfeit != nil {
		atomic.AddUint32(&va.forfeits, 1)
		va.mu.Lock()
		va.forfeitErrs = multierror.Append(va.forfeitErrs, errors.WithMessagef(record.Forfeit, "game %d", game+1))
		va.mu.Unlock()
		va.log.Warn().Err(record.Forfeit).Int("game", game+1).Msg("forfeit")
	}

	info.Moves = record.Moves
	info.Result = result
	info.FinishedGames = va.Total()
	listener.OnFinishedGame(info)
	return nil
}
