// Package session keeps the games played through the server.
package session

import (
	"encoding/hex"
	"sync"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	botOpts  bot.Options
	log      zerolog.Logger
}

func NewStore(botOpts bot.Options, logger zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		botOpts:  botOpts,
		log:      logger,
	}
}

func newID() string {
	return hex.EncodeToString(frand.Bytes(16))
}

// Start a new game. When the opening bot move fails, the session
// is stored anyway (already decided by forfeit) and the error is returned with it.
func (st *Store) Create(opts Options) (*Session, error) {
	s, err := newSession(newID(), opts, st.botOpts, st.log)
	if s == nil {
		return nil, err
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.log.Info().
		Str("game_id", s.ID).
		Str("mode", string(s.Mode)).
		Str("difficulty", s.Difficulty).
		Msg("game started")
	return s, err
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	return s, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
