// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Each player (user or anonymous cookie) gets one result per day: the DB
// row is written when the game ends, win or loss.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	mu       sync.Mutex               // guards sessions
	sessions map[string]*dailySession // keyed by playerID|date
}

type dailySession struct {
	gameID    string
	date      string
	wordIndex int
	start     time.Time
	game      *game.Session
}

// mountDaily registers all /daily routes on r.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		sessions: make(map[string]*dailySession),
	}
	r.Post("/daily/new", dd.handleNew)
	r.Post("/daily/guess", dd.handleGuess)
	r.Get("/daily/leaderboard", dd.handleLeaderboard)
}

func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

type dailyNewRes struct {
	GameID     string `json:"gameId,omitempty"`
	Date       string `json:"date"`
	Played     bool   `json:"played"`
	MaxTurns   int    `json:"maxTurns"`
	WordLength int    `json:"wordLength"`
}

// handleNew creates or reuses today's session. Played=true means a result
// is already on record for this player.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	now := d.srv.cfg.Now()
	date := daily.DateKey(now)
	out := dailyNewRes{Date: date, MaxTurns: d.srv.cfg.MaxTurns}

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		d.srv.fail(w, err)
		return
	}
	if played {
		out.Played = true
		writeJSON(w, http.StatusOK, out)
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	ds, ok := d.sessions[key]
	if !ok {
		answer, idx := daily.Solution(now, d.srv.cfg.DailySalt, d.srv.cfg.Lists.Answers)
		sess, err := game.NewSession(game.Config{
			Solution: answer,
			Allowed:  d.srv.cfg.Lists.Allowed,
			MaxTurns: d.srv.cfg.MaxTurns,
		})
		if err != nil {
			d.mu.Unlock()
			d.srv.fail(w, err)
			return
		}
		ds = &dailySession{gameID: uuid.NewString(), date: date, wordIndex: idx, start: now, game: sess}
		d.sessions[key] = ds
	}
	d.mu.Unlock()

	out.GameID = ds.gameID
	out.WordLength = ds.game.WordLength()
	writeJSON(w, http.StatusOK, out)
}

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

type dailyGuessRes struct {
	Feedback game.Feedback `json:"feedback"`
	Marks    []int         `json:"marks"`
	State    game.Status   `json:"state"`
	Guesses  int           `json:"guesses"`
	Solution string        `json:"solution,omitempty"`
}

// handleGuess applies a guess to today's session and records the result
// once the game ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	key := uid + "|" + daily.DateKey(d.srv.cfg.Now())
	d.mu.Lock()
	ds, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || ds.gameID != p.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	res, err := ds.game.Guess(p.Word)
	if err != nil {
		d.srv.fail(w, err)
		return
	}
	out := dailyGuessRes{
		Feedback: res.Feedback,
		Marks:    res.Feedback.Ints(),
		State:    res.Status,
		Guesses:  ds.game.TurnsUsed(),
	}

	if res.Status.Terminal() {
		sol, _ := ds.game.RevealSolution()
		out.Solution = sol.String()
		result := daily.Result{
			UserID:    uid,
			Date:      ds.date,
			WordIndex: ds.wordIndex,
			Guesses:   ds.game.TurnsUsed(),
			ElapsedMs: int(d.srv.cfg.Now().Sub(ds.start).Milliseconds()),
			Won:       res.Status == game.StatusWon,
			Grid:      daily.Grid(ds.game.History()),
		}
		if err := d.store.InsertResult(r.Context(), result); err != nil {
			log.Error().Err(err).Str("user", uid).Str("date", ds.date).Msg("insert daily result")
		}
		d.mu.Lock()
		delete(d.sessions, key)
		d.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, out)
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for ?date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.cfg.Now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		d.srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
