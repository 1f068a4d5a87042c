// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, zerolog access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/{id}.
//   - Solver endpoint: POST /solver/candidates (filter a vocabulary by posted feedback).
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine (auth.go).
//
// Errors are returned as {"error":"<code>"}; see statusFor for the mapping.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/solver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Config carries everything the server needs besides storage.
type Config struct {
	Lists     words.Lists
	MaxTurns  int              // 0 means game.DefaultMaxTurns
	DailySalt string           // HMAC key for the daily word
	Rand      *rand.Rand       // solution selection for /game/new
	Now       func() time.Time // defaults to time.Now
}

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   Config

	randMu sync.Mutex // *rand.Rand is not safe for concurrent use
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg Config) *Server {
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = game.DefaultMaxTurns
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-engine","endpoints":["/health","POST /game/new","POST /game/guess","POST /solver/candidates","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"answers":  s.cfg.Lists.Answers.Len(),
			"allowed":  s.cfg.Lists.Allowed.Len(),
			"sessions": s.store.Len(),
		})
	})

	// Game endpoints: optional auth (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleGetGame)

	s.r.Post("/solver/candidates", s.handleCandidates)

	// Daily Challenge: optional auth (guests can play; results persisted when finished)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}

type newGameRes struct {
	GameID     string `json:"gameId"`
	MaxTurns   int    `json:"maxTurns"`
	WordLength int    `json:"wordLength"`
}

// handleNewGame creates a session and persists an owner row
// (user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var (
		sess *game.Session
		err  error
	)
	if req.Answer != "" {
		ans, perr := words.Parse(req.Answer)
		if perr != nil {
			s.fail(w, perr)
			return
		}
		sess, err = game.NewSession(game.Config{Solution: ans, Allowed: s.cfg.Lists.Allowed, MaxTurns: s.cfg.MaxTurns})
	} else {
		s.randMu.Lock()
		sess, err = game.NewRandomSession(s.cfg.Lists.Answers, s.cfg.Lists.Allowed, s.cfg.Rand, s.cfg.MaxTurns)
		s.randMu.Unlock()
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	now := s.cfg.Now().UTC().Format(time.RFC3339)
	if me := userFrom(r); me != nil {
		_, err = s.db.Exec(`INSERT INTO games (id, user_id, started_at, status, guesses) VALUES (?,?,?,?,0)`,
			sess.ID(), me.ID, now, game.StatusInProgress.String())
	} else {
		_, err = s.db.Exec(`INSERT INTO games (id, anonymous_id, started_at, status, guesses) VALUES (?,?,?,?,0)`,
			sess.ID(), s.ensureAnonID(w, r), now, game.StatusInProgress.String())
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID()).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.ID(), MaxTurns: sess.MaxTurns(), WordLength: sess.WordLength()})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Feedback       game.Feedback `json:"feedback"`
	Marks          []int         `json:"marks"` // per-letter: 0=absent, 1=present, 2=correct
	Status         game.Status   `json:"status"`
	TurnsRemaining int           `json:"turnsRemaining"`
	Solution       string        `json:"solution,omitempty"`
}

// handleGuess applies a guess, persists progress and, once the game is
// over, updates user stats in a best-effort transaction.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		s.fail(w, err)
		return
	}
	res, err := sess.Guess(req.Guess)
	if err != nil {
		s.fail(w, err)
		return
	}

	out := guessRes{
		Feedback:       res.Feedback,
		Marks:          res.Feedback.Ints(),
		Status:         res.Status,
		TurnsRemaining: res.TurnsRemaining,
	}
	if sol, ok := sess.RevealSolution(); ok {
		out.Solution = sol.String()
	}
	s.recordGuess(w, r, sess, res)
	// Finished games live on in the games table only.
	if res.Status.Terminal() {
		if err := s.store.Delete(r.Context(), sess.ID()); err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID()).Msg("evict finished game")
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// recordGuess mirrors session progress into the games table (best effort).
func (s *Server) recordGuess(w http.ResponseWriter, r *http.Request, sess *game.Session, res game.GuessResult) {
	me := userFrom(r)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin guess tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	grid := daily.Grid(sess.History())
	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1, grid=? WHERE id=? AND `+ownerClause,
		grid, sess.ID(), ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}
	if res.Status.Terminal() {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			res.Status.String(), s.cfg.Now().UTC().Format(time.RFC3339), sess.ID(), ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, res.Status == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit guess tx")
	}
}

type historyRow struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}

type gameStateRes struct {
	GameID         string       `json:"gameId"`
	Status         game.Status  `json:"status"`
	TurnsRemaining int          `json:"turnsRemaining"`
	History        []historyRow `json:"history"`
	Solution       string       `json:"solution,omitempty"`
}

// handleGetGame returns the public state of an in-progress session. Finished
// sessions are evicted from the store, so they answer 404.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	out := gameStateRes{
		GameID:         sess.ID(),
		Status:         sess.Status(),
		TurnsRemaining: sess.TurnsRemaining(),
		History:        []historyRow{},
	}
	for _, rec := range sess.History() {
		out.History = append(out.History, historyRow{Guess: rec.Guess.String(), Feedback: rec.Feedback.String()})
	}
	if sol, ok := sess.RevealSolution(); ok {
		out.Solution = sol.String()
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------ SOLVER -------------------------------------

type candidatesReq struct {
	History []historyRow `json:"history"`
	Pool    string       `json:"pool"`  // "answers" (default) | "allowed"
	Limit   int          `json:"limit"` // default 10
}

type candidatesRes struct {
	Candidates []string `json:"candidates"`
	Count      int      `json:"count"`
}

// handleCandidates filters a vocabulary by externally observed feedback,
// e.g. a board typed in by hand. Feedback accepts G/Y/X or 2/1/0.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	pool := s.cfg.Lists.Answers
	if req.Pool == "allowed" {
		pool = s.cfg.Lists.Allowed
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	history := make([]game.GuessRecord, 0, len(req.History))
	for _, h := range req.History {
		g, err := words.Parse(h.Guess)
		if err != nil {
			s.fail(w, err)
			return
		}
		fb, err := game.ParseFeedback(h.Feedback)
		if err != nil {
			s.fail(w, err)
			return
		}
		history = append(history, game.GuessRecord{Guess: g, Feedback: fb})
	}

	cands, total, err := solver.Suggest(history, pool, req.Limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	out := candidatesRes{Candidates: make([]string, len(cands)), Count: total}
	for i, c := range cands {
		out.Candidates[i] = c.String()
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- errors ------------------------------------

// statusFor maps engine errors onto an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, words.ErrInvalidWordLength):
		return http.StatusBadRequest, "invalid_word_length"
	case errors.Is(err, words.ErrInvalidAlphabet):
		return http.StatusBadRequest, "invalid_alphabet"
	case errors.Is(err, game.ErrNotInAllowedVocabulary):
		return http.StatusBadRequest, "not_in_word_list"
	case errors.Is(err, game.ErrInvalidFeedback):
		return http.StatusBadRequest, "invalid_feedback"
	case errors.Is(err, game.ErrLengthMismatch):
		return http.StatusBadRequest, "length_mismatch"
	case errors.Is(err, game.ErrSessionTerminated):
		return http.StatusConflict, "game_finished"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, code)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
