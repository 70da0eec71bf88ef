// internal/httpserver/routes_game.go
//
// Game endpoints. Handlers only translate HTTP to the game.Game methods;
// every rule lives in package game.
//   - POST /game/new           → start a game (normal/hard, optional daily code)
//   - GET  /game/{id}          → current view
//   - POST /game/{id}/slot     → set one draft slot
//   - POST /game/{id}/select   → select a color (fills the first empty slot)
//   - POST /game/{id}/delete   → clear the last filled slot
//   - POST /game/{id}/submit   → submit the draft (409 when it cannot be submitted)
//   - POST /game/{id}/hint     → advisory hint, never fails

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/senha/internal/daily"
	"github.com/robalobadob/senha/internal/game"
	"github.com/robalobadob/senha/internal/hint"
	"github.com/robalobadob/senha/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requirePlayer, s.requireOwner)
			r.Get("/", s.handleView)
			r.Post("/slot", s.handleSlot)
			r.Post("/select", s.handleSelect)
			r.Post("/delete", s.handleDelete)
			r.Post("/submit", s.handleSubmit)
			r.Post("/hint", s.handleHint)
		})
	})
}

// requireOwner rejects requests for games created by another player.
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := s.store.Owner(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		if err != nil {
			logger(r).Error().Err(err).Msg("load owner")
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		if owner != currentPlayer(r) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Difficulty string `json:"difficulty"` // "normal" | "hard"
	Daily      bool   `json:"daily"`      // use the code of the day
}
type newGameRes struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	View   game.View `json:"view"`
}

// handleNewGame creates a game owned by the caller, minting a player token if needed.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means a normal game

	player, tok, err := s.issuePlayer(w, r)
	if err != nil {
		logger(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	var opts []game.Option
	if req.Daily {
		opts = append(opts, game.WithSource(daily.Source(s.opts.Now(), s.opts.DailySalt)))
	}
	g := game.New(game.ParseDifficulty(req.Difficulty), opts...)
	if err := s.store.Save(r.Context(), g, player); err != nil {
		logger(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	logger(r).Info().Str("gameId", g.ID).Str("difficulty", string(g.Difficulty)).Bool("daily", req.Daily).Msg("game started")

	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Token: tok, View: g.View()})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, func(*game.Game) {})
}

type slotReq struct {
	Index int        `json:"index"`
	Color game.Color `json:"color"`
}

func (s *Server) handleSlot(w http.ResponseWriter, r *http.Request) {
	var req slotReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.apply(w, r, func(g *game.Game) { g.SetDraftSlot(req.Index, req.Color) })
}

type selectReq struct {
	Color game.Color `json:"color"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.apply(w, r, func(g *game.Game) { g.SelectColor(req.Color) })
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, func(g *game.Game) { g.ClearLastFilledSlot() })
}

// handleSubmit checks CanSubmit under the same lock as the submission so
// the reported outcome matches what happened to the game.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var (
		submitted bool
		guess     game.Guess
	)
	view, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) {
		if !g.CanSubmit() {
			return
		}
		guess, submitted = g.SubmitGuess()
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if !submitted {
		writeError(w, http.StatusConflict, "cannot_submit")
		return
	}
	exact, partial := game.Count(guess.Feedback)
	logger(r).Debug().Str("gameId", view.ID).Int("turn", guess.Turn).
		Int("exact", exact).Int("partial", partial).Str("status", string(view.Status)).Msg("guess submitted")
	writeJSON(w, http.StatusOK, view)
}

type hintRes struct {
	Hint string `json:"hint"`
}

// handleHint asks the hint collaborator about a snapshot of the game.
// Gameplay on the same game is not blocked while the hint is pending.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.HintTimeout)
	defer cancel()

	text := hint.FallbackBusy
	select {
	case text = <-hint.Async(ctx, s.hinter, snap.Guesses, snap.Secret):
	case <-ctx.Done():
		logger(r).Warn().Str("gameId", snap.ID).Msg("hint timed out")
	}
	writeJSON(w, http.StatusOK, hintRes{Hint: text})
}

// apply runs fn on the game under its lock and writes the resulting view.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, fn func(*game.Game)) {
	view, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), fn)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	logger(r).Error().Err(err).Msg("store")
	writeError(w, http.StatusInternalServerError, "store_failed")
}
