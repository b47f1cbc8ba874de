package session

import (
	"context"
	"sync"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Mode string

const (
	PlayerVsPlayer Mode = "Player vs Player"
	PlayerVsBot    Mode = "Player vs Bot"
	BotVsBot       Mode = "Bot vs Bot"
)

func (m Mode) Valid() bool {
	switch m {
	case PlayerVsPlayer, PlayerVsBot, BotVsBot:
		return true
	}
	return false
}

const (
	RolePlayer1 = "Player 1"
	RolePlayer2 = "Player 2"
)

var (
	ErrNotFound    = errors.New("session: invalid game id")
	ErrUnknownMode = errors.New("session: unknown mode")
	ErrWrongMode   = errors.New("session: operation not available in this mode")
	ErrNotYourTurn = errors.New("session: not the human player's turn")
	ErrGameOver    = errors.New("session: game is over")
	ErrBotFailed   = errors.New("session: bot failed")
	ErrAutoplay    = errors.New("session: game is played automatically")
)

// Parameters of a new game
type Options struct {
	Mode        Mode   `json:"mode"`
	Difficulty  string `json:"difficulty"`
	PlayerRole  string `json:"playerRole"`
	Player1Name string `json:"player1Name"`
	Player2Name string `json:"player2Name"`
}

type Forfeit struct {
	Player uttt.Player
	Reason string
}

// A single game, safe for concurrent use
type Session struct {
	ID          string
	Mode        Mode
	Difficulty  string
	Player1Name string
	Player2Name string
	Created     time.Time

	mu      sync.Mutex
	pos     *uttt.Position
	bots    [2]bot.Policy // indexed by player-1, nil for a human
	forfeit *Forfeit
	log     zerolog.Logger

	autoplay bool
}

func newSession(id string, opts Options, botOpts bot.Options, logger zerolog.Logger) (*Session, error) {
	if !opts.Mode.Valid() {
		return nil, errors.Wrapf(ErrUnknownMode, "%q", opts.Mode)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = bot.Medium
	}
	if opts.Player1Name == "" {
		opts.Player1Name = RolePlayer1
	}
	if opts.Player2Name == "" {
		opts.Player2Name = RolePlayer2
	}

	s := &Session{
		ID:          id,
		Mode:        opts.Mode,
		Difficulty:  opts.Difficulty,
		Player1Name: opts.Player1Name,
		Player2Name: opts.Player2Name,
		Created:     time.Now(),
		pos:         uttt.NewPosition(),
		log:         logger.With().Str("game_id", id).Logger(),
	}

	// Every bot gets its own random source
	botOpts.RNG = nil
	switch opts.Mode {
	case PlayerVsBot:
		human := uttt.PlayerX
		if opts.PlayerRole == RolePlayer2 {
			human = uttt.PlayerO
		}
		s.bots[int(human.Opponent())-1] = bot.New(opts.Difficulty, botOpts)
	case BotVsBot:
		s.bots[0] = bot.New(opts.Difficulty, botOpts)
		s.bots[1] = bot.New(opts.Difficulty, botOpts)
	}

	// Bot opens the game, when the human plays second
	if s.isBotTurn() && opts.Mode == PlayerVsBot {
		if err := s.botMove(); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (s *Session) isBotTurn() bool {
	return s.bots[int(s.pos.ToMove())-1] != nil
}

func (s *Session) over() bool {
	return s.forfeit != nil || s.pos.Result() != uttt.InProgress
}

// Let the bot on turn play, a failure forfeits the game
func (s *Session) botMove() error {
	player := s.pos.ToMove()
	policy := s.bots[int(player)-1]
	last, _ := s.pos.LastMove()

	move, err := policy.Play(s.pos.Board(), last, player)
	if err == nil {
		err = s.pos.MakeLegalMove(move)
	}
	if err != nil {
		s.forfeit = &Forfeit{Player: player, Reason: err.Error()}
		s.log.Error().Err(err).Str("bot", policy.Name()).Msg("bot forfeits")
		return errors.Wrapf(ErrBotFailed, "%s: %v", policy.Name(), err)
	}

	s.log.Debug().Str("bot", policy.Name()).Str("move", move.String()).Msg("bot move")
	return nil
}

// Play a human move at (row, col), then in Player vs Bot mode the bot's reply.
// The returned snapshot reflects the state after both moves, also when the bot failed.
func (s *Session) Move(row, col int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode == BotVsBot {
		return s.snapshot(), errors.Wrap(ErrWrongMode, "moves are played by the bots")
	}
	if s.over() {
		return s.snapshot(), ErrGameOver
	}
	if s.isBotTurn() {
		return s.snapshot(), ErrNotYourTurn
	}

	if err := s.pos.MakeLegalMove(uttt.Move{Row: row, Col: col}); err != nil {
		return s.snapshot(), err
	}

	if s.Mode == PlayerVsBot && !s.over() {
		if err := s.botMove(); err != nil {
			return s.snapshot(), err
		}
	}
	return s.snapshot(), nil
}

// Advance a Bot vs Bot game by a single move
func (s *Session) Step() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode != BotVsBot {
		return s.snapshot(), errors.Wrap(ErrWrongMode, "only bot games can be stepped")
	}
	if s.over() {
		return s.snapshot(), ErrGameOver
	}
	if s.autoplay {
		return s.snapshot(), ErrAutoplay
	}
	err := s.botMove()
	return s.snapshot(), err
}

// Play a Bot vs Bot game to the end on a single goroutine, a move per interval.
// Calls while it's running are no-ops, manual steps are rejected meanwhile.
// The goroutine exits when the game ends, a bot fails or ctx is done.
func (s *Session) Autoplay(ctx context.Context, interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode != BotVsBot {
		return errors.Wrap(ErrWrongMode, "only bot games play automatically")
	}
	if s.autoplay || s.over() {
		return nil
	}
	s.autoplay = true
	go s.autoplayLoop(ctx, interval)
	return nil
}

func (s *Session) Autoplaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoplay
}

func (s *Session) autoplayLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer func() {
		s.mu.Lock()
		s.autoplay = false
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.over() {
			s.mu.Unlock()
			return
		}
		err := s.botMove()
		s.mu.Unlock()
		if err != nil {
			return
		}
	}
}

func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Notation of the current position
func (s *Session) Notation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.Notation()
}

func (s *Session) snapshot() Snapshot {
	last, _ := s.pos.LastMove()
	snap := Snapshot{
		GameID:        s.ID,
		Mode:          s.Mode,
		Board:         s.pos.Board(),
		MainBoard:     s.pos.MetaBoard(),
		CurrentPlayer: int(s.pos.ToMove()),
		LastMove:      last,
		History:       s.pos.History(),
		Player1Name:   s.Player1Name,
		Player2Name:   s.Player2Name,
	}
	if bi, ok := s.pos.ForcedBoard(); ok {
		snap.ActiveBoard = &bi
	}

	switch {
	case s.forfeit != nil:
		winner := int(s.forfeit.Player.Opponent())
		snap.Winner = &winner
		snap.Forfeit = s.forfeit.Reason
	case s.pos.Result() == uttt.Drawn:
		draw := int(uttt.LocalDrawn)
		snap.Winner = &draw
	case s.pos.Result() != uttt.InProgress:
		winner := int(s.pos.Result().Winner())
		snap.Winner = &winner
	}
	return snap
}

// Boundary view of a session
type Snapshot struct {
	GameID        string         `json:"game_id"`
	Mode          Mode           `json:"mode"`
	Board         uttt.Board     `json:"board"`
	MainBoard     uttt.MetaBoard `json:"mainboard"`
	CurrentPlayer int            `json:"currentPlayer"`
	Winner        *int           `json:"winner"` // null in progress, 1 or 2 the winner, 3 a draw
	LastMove      uttt.Move      `json:"lastMove"`
	ActiveBoard   *int           `json:"activeBoard"` // null on free choice
	History       []uttt.Move    `json:"history"`
	Forfeit       string         `json:"forfeit,omitempty"`
	Player1Name   string         `json:"player1Name"`
	Player2Name   string         `json:"player2Name"`
}

func (s Snapshot) Over() bool {
	return s.Winner != nil
}
