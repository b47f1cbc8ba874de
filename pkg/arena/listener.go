package arena

import "github.com/rs/zerolog"

// Receives the arena progress. Games run on several goroutines,
// so implementations must be safe for concurrent use.
type ListenerLike interface {
	OnMoveMade(info VersusGameInfo)
	OnFinishedGame(info VersusGameInfo)
	Summary(summary VersusSummaryInfo)
}

type DefaultListener struct{}

func (DefaultListener) OnMoveMade(VersusGameInfo)     {}
func (DefaultListener) OnFinishedGame(VersusGameInfo) {}
func (DefaultListener) Summary(VersusSummaryInfo)     {}

// Logs finished games and the summary
type LogListener struct {
	DefaultListener
	log zerolog.Logger
}

func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{log: logger}
}

func (l *LogListener) OnFinishedGame(info VersusGameInfo) {
	l.log.Info().
		Int("game", info.Game+1).
		Int("of", info.NGames).
		Str("player1", info.P1Name).
		Str("player2", info.P2Name).
		Bool("player1_first", info.P1First).
		Int("moves", len(info.Moves)).
		Str("winner", info.Result.String()).
		Msg("game finished")
}

func (l *LogListener) Summary(summary VersusSummaryInfo) {
	l.log.Info().
		Int("games", summary.TotalGames).
		Int("player1_wins", summary.P1Wins).
		Int("player2_wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Int("forfeits", summary.Forfeits).
		Msg(summary.String())
}
