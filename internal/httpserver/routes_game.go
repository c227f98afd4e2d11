// internal/httpserver/routes_game.go
//
// HTTP routes for the game lifecycle.
// Endpoints under /game plus the mode/ledger reads:
//   - GET  /modes                 → playable modes
//   - GET  /game                  → current snapshot
//   - GET  /game/eligible-teams   → a mode's full starting pool
//   - POST /game/start            → begin a game (chosen, random, or daily team)
//   - POST /game/pick             → record the player picked to leave the round
//   - POST /game/navigate         → visit one of the picked player's teams
//   - POST /game/timeout          → latch the round clock expiry
//   - POST /game/end              → finish, evaluate bonus, archive
//   - POST /game/abandon          → discard without archiving
//   - GET  /history               → archived games, most recent first
//   - GET  /best-scores           → per-mode bests
//
// Team targets and win/loss records are resolved here, server-side, so a
// client can never report its own score.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/pools"
	"github.com/hofgolf/go-server/internal/stats"
)

// mountGame registers the game lifecycle routes.
func (s *Server) mountGame() {
	s.r.Get("/modes", s.handleModes)
	s.r.Get("/modes/{modeID}", s.handleMode)
	s.r.Get("/history", s.handleHistory)
	s.r.Get("/best-scores", s.handleBestScores)

	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleGameState)
		r.Get("/eligible-teams", s.handleEligibleTeams)
		r.Post("/start", s.handleStart)
		r.Post("/pick", s.handlePick)
		r.Post("/navigate", s.handleNavigate)
		r.Post("/timeout", s.handleTimeout)
		r.Post("/end", s.handleEnd)
		r.Post("/abandon", s.handleAbandon)
	})
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.modes.ActiveModes())
}

type modeRes struct {
	game.GameMode
	BestScore int `json:"bestScore"`
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.modes.Mode(chi.URLParam(r, "modeID"))
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown mode")
		return
	}
	best, _ := s.session.BestScore(mode.ID)
	writeJSON(w, modeRes{GameMode: mode, BestScore: best})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleEligibleTeams(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.modes.Mode(r.URL.Query().Get("modeId"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown mode")
		return
	}
	pool, err := s.pools.EligibleTeams(r.Context(), mode)
	if err != nil {
		if errors.Is(err, pools.ErrNoEligibleTeams) {
			writeErr(w, http.StatusNotFound, "no eligible teams")
			return
		}
		log.Error().Err(err).Str("modeId", mode.ID).Msg("eligible teams")
		writeErr(w, http.StatusInternalServerError, "pool_failed")
		return
	}
	writeJSON(w, pool)
}

// -----------------------------------------------------------------------------
// /game/start

type startReq struct {
	ModeID string `json:"modeId"`
	// TeamID/YearID choose an explicit start (free-pick modes). Leave empty
	// for a random draw, or set Daily for the deterministic team of the day.
	TeamID string `json:"teamID,omitempty"`
	YearID int    `json:"yearID,omitempty"`
	Daily  bool   `json:"daily,omitempty"`
	Timed  bool   `json:"timed,omitempty"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode, ok := s.modes.Mode(req.ModeID)
	if !ok || !mode.Active {
		writeErr(w, http.StatusBadRequest, "unknown mode")
		return
	}

	team, err := s.resolveStart(r, mode, req)
	if err != nil {
		if errors.Is(err, pools.ErrNoEligibleTeams) {
			writeErr(w, http.StatusNotFound, "no eligible teams")
			return
		}
		log.Error().Err(err).Str("modeId", mode.ID).Msg("resolve start")
		writeErr(w, http.StatusInternalServerError, "start_failed")
		return
	}

	found, rec, err := s.teamContext(r, mode, team.TeamID, team.YearID)
	if err != nil {
		log.Error().Err(err).Stringer("team", team).Msg("scan starting roster")
		writeErr(w, http.StatusInternalServerError, "start_failed")
		return
	}

	// Non-freebie modes start with an empty round 0: nothing credited until
	// the first navigation.
	if !mode.Start.Freebie {
		found = nil
	}

	snap := s.session.StartGame(r.Context(), mode, team, found, game.StartOptions{
		Timed: req.Timed,
		TeamW: rec.W,
		TeamL: rec.L,
	})
	writeJSON(w, snap)
}

// resolveStart picks the starting team-season: explicit, daily, or random.
func (s *Server) resolveStart(r *http.Request, mode game.GameMode, req startReq) (game.TeamSeason, error) {
	if req.TeamID != "" && req.YearID != 0 {
		pool, err := s.pools.EligibleTeams(r.Context(), mode)
		if err != nil {
			return game.TeamSeason{}, err
		}
		for _, t := range pool {
			if t.TeamID == req.TeamID && t.YearID == req.YearID {
				return t, nil
			}
		}
		return game.TeamSeason{}, pools.ErrNoEligibleTeams
	}
	if req.Daily {
		salt := getEnv("DAILY_SALT", "local_dev_salt")
		return s.pools.DailyStart(r.Context(), mode, time.Now(), salt)
	}
	return s.pools.RandomStart(r.Context(), mode)
}

// teamContext scans a team-season for the mode's targets and loads its
// win/loss record.
func (s *Server) teamContext(r *http.Request, mode game.GameMode, teamID string, yearID int) ([]game.Target, stats.TeamRecord, error) {
	found, err := s.scanner.TargetsOnRoster(r.Context(), mode, teamID, yearID)
	if err != nil {
		return nil, stats.TeamRecord{}, err
	}
	rec, err := s.stats.RecordOf(r.Context(), teamID, yearID)
	if err != nil {
		return nil, stats.TeamRecord{}, err
	}
	return found, rec, nil
}

// -----------------------------------------------------------------------------
// /game/pick

type pickReq struct {
	PlayerID string `json:"playerID"`
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	var req pickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}

	name := req.PlayerID
	if bio, err := s.stats.PlayerBio(r.Context(), req.PlayerID); err == nil {
		name = bio.Name
	} else if !errors.Is(err, stats.ErrNotFound) {
		log.Warn().Err(err).Str("playerID", req.PlayerID).Msg("pick: load bio")
	}

	writeJSON(w, s.session.PickPlayer(r.Context(), req.PlayerID, name))
}

// -----------------------------------------------------------------------------
// /game/navigate

type navigateReq struct {
	TeamID string `json:"teamID"`
	YearID int    `json:"yearID"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TeamID == "" || req.YearID == 0 {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	snap := s.session.Snapshot()
	if !snap.GameActive {
		writeErr(w, http.StatusConflict, "no active game")
		return
	}
	mode, ok := s.modes.Mode(snap.Active.ModeID)
	if !ok {
		writeErr(w, http.StatusConflict, "unknown mode")
		return
	}

	// The timeout latch is consumed here: an expired clock zeroes this visit.
	timedOut := s.session.RoundTimedOut()

	found, rec, err := s.teamContext(r, mode, req.TeamID, req.YearID)
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "unknown team-season")
			return
		}
		log.Error().Err(err).Str("teamID", req.TeamID).Int("yearID", req.YearID).Msg("navigate")
		writeErr(w, http.StatusInternalServerError, "navigate_failed")
		return
	}

	team := game.TeamSeason{TeamID: req.TeamID, YearID: req.YearID, TeamName: rec.Name}
	writeJSON(w, s.session.NavigateToTeam(r.Context(), team, found, game.NavigateOptions{
		TeamW:    rec.W,
		TeamL:    rec.L,
		TimedOut: timedOut,
	}))
}

// -----------------------------------------------------------------------------
// /game/timeout, /game/end, /game/abandon

func (s *Server) handleTimeout(w http.ResponseWriter, r *http.Request) {
	s.session.MarkRoundTimedOut()
	writeJSON(w, s.session.Snapshot())
}

type endRes struct {
	Saved *game.SavedGame `json:"saved"`
	// Best is the mode's best score after this game is accounted for.
	Best int `json:"best"`
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	saved := s.session.EndGame(r.Context())
	if saved == nil {
		writeErr(w, http.StatusConflict, "no active game")
		return
	}
	best, _ := s.session.BestScore(saved.ModeID)
	writeJSON(w, endRes{Saved: saved, Best: best})
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	s.session.AbandonGame(r.Context())
	writeJSON(w, s.session.Snapshot())
}

// -----------------------------------------------------------------------------
// ledgers

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.session.History())
}

func (s *Server) handleBestScores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.session.BestScores())
}
