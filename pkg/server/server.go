package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/session"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const DefaultWatchInterval = 500 * time.Millisecond

type Server struct {
	ctx           context.Context // bounds the autoplay of watched games
	store         *session.Store
	log           zerolog.Logger
	router        chi.Router
	upgrader      websocket.Upgrader
	watchInterval time.Duration
}

func New(store *session.Store, logger zerolog.Logger) *Server {
	s := &Server{
		ctx:           context.Background(),
		store:         store,
		log:           logger,
		upgrader:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		watchInterval: DefaultWatchInterval,
	}
	s.routes()
	return s
}

// Delay between the moves streamed to the watchers
func (s *Server) SetWatchInterval(interval time.Duration) *Server {
	if interval > 0 {
		s.watchInterval = interval
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Backend is running!"})
	})
	r.Post("/start", s.handleStart)
	r.Post("/move", s.handleMove)
	r.Get("/state", s.handleState)
	r.Post("/step", s.handleStep)
	r.Get("/ws/watch", s.handleWatch)

	s.router = r
}

// Serve until the context is done, then shut down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.ctx = ctx
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type stateResponse struct {
	Success bool `json:"success"`
	session.Snapshot
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type moveRequest struct {
	GameID string `json:"game_id"`
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
}

type gameRequest struct {
	GameID string `json:"game_id"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	opts := session.Options{Difficulty: "Medium", PlayerRole: session.RolePlayer1}
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.store.Create(opts)
	if sess == nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if err != nil {
		writeError(w, statusFor(err), "Bot crashed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, Snapshot: sess.Snapshot()})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.store.Get(req.GameID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid game ID")
		return
	}
	if req.Row == nil || req.Col == nil {
		writeError(w, http.StatusBadRequest, "Invalid move")
		return
	}

	snap, err := sess.Move(*req.Row, *req.Col)
	if err != nil {
		s.log.Debug().Err(err).Str("game_id", req.GameID).Msg("move rejected")
		writeError(w, statusFor(err), errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, Snapshot: snap})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.URL.Query().Get("game_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid game ID")
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, Snapshot: sess.Snapshot()})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.store.Get(req.GameID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid game ID")
		return
	}

	snap, err := sess.Step()
	if err != nil {
		writeError(w, statusFor(err), errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, Snapshot: snap})
}

// Map session errors to the http status codes, client mistakes are
// bad requests, a failing bot is an internal error
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrBotFailed):
		return http.StatusInternalServerError
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrUnknownMode),
		errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrNotYourTurn),
		errors.Is(err, session.ErrGameOver),
		errors.Is(err, session.ErrAutoplay),
		errors.Is(err, uttt.ErrIllegalMove):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, uttt.ErrIllegalMove):
		return "Invalid move"
	case errors.Is(err, session.ErrBotFailed):
		return "Bot crashed: " + err.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
