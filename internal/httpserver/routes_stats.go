// internal/httpserver/routes_stats.go
//
// Browse endpoints over the historical statistics database:
//   - GET /teams?year=                      → team-seasons of a year
//   - GET /standings?year=                  → standings grouped by league/division
//   - GET /teams/{teamID}/{year}            → one team-season's record
//   - GET /teams/{teamID}/{year}/roster     → batters + pitchers with stat lines
//   - GET /teams/{teamID}/{year}/targets    → the mode's targets on that roster
//   - GET /players/search?q=&limit=         → player name search
//   - GET /players/{playerID}               → bio + career lines
//   - GET /players/{playerID}/batting       → season batting lines
//   - GET /players/{playerID}/pitching      → season pitching lines
//
// The per-player season lines double as the navigation affordance: each line
// names a (team, year) the picked player can ride to.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hofgolf/go-server/internal/stats"
)

// mountStats registers the browse routes.
func (s *Server) mountStats() {
	s.r.Get("/teams", s.handleTeamsInYear)
	s.r.Get("/standings", s.handleStandings)
	s.r.Route("/teams/{teamID}/{year}", func(r chi.Router) {
		r.Get("/", s.handleTeamRecord)
		r.Get("/roster", s.handleTeamRoster)
		r.Get("/targets", s.handleTeamTargets)
	})
	s.r.Get("/players/search", s.handlePlayerSearch)
	s.r.Route("/players/{playerID}", func(r chi.Router) {
		r.Get("/", s.handlePlayer)
		r.Get("/batting", s.handlePlayerBatting)
		r.Get("/pitching", s.handlePlayerPitching)
	})
}

func yearParam(r *http.Request, key string) (int, bool) {
	y, err := strconv.Atoi(chi.URLParam(r, key))
	return y, err == nil && y > 1800
}

func yearQuery(r *http.Request) (int, bool) {
	y, err := strconv.Atoi(r.URL.Query().Get("year"))
	return y, err == nil && y > 1800
}

func (s *Server) handleTeamsInYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearQuery(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad year")
		return
	}
	teams, err := s.stats.TeamsInYear(r.Context(), year)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("teams in year")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, teams)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	year, ok := yearQuery(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad year")
		return
	}
	rows, err := s.stats.Standings(r.Context(), year)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("standings")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, rows)
}

func (s *Server) handleTeamRecord(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r, "year")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad year")
		return
	}
	teamID := chi.URLParam(r, "teamID")
	rec, err := s.stats.RecordOf(r.Context(), teamID, year)
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "unknown team-season")
			return
		}
		log.Error().Err(err).Str("teamID", teamID).Int("year", year).Msg("team record")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, rec)
}

type rosterRes struct {
	Batters  []stats.Batter  `json:"batters"`
	Pitchers []stats.Pitcher `json:"pitchers"`
}

func (s *Server) handleTeamRoster(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r, "year")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad year")
		return
	}
	teamID := chi.URLParam(r, "teamID")
	batters, err := s.stats.TeamBatters(r.Context(), teamID, year)
	if err != nil {
		log.Error().Err(err).Str("teamID", teamID).Int("year", year).Msg("team batters")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	pitchers, err := s.stats.TeamPitchers(r.Context(), teamID, year)
	if err != nil {
		log.Error().Err(err).Str("teamID", teamID).Int("year", year).Msg("team pitchers")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, rosterRes{Batters: batters, Pitchers: pitchers})
}

func (s *Server) handleTeamTargets(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r, "year")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad year")
		return
	}
	mode, ok := s.modes.Mode(r.URL.Query().Get("modeId"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown mode")
		return
	}
	teamID := chi.URLParam(r, "teamID")
	found, err := s.scanner.TargetsOnRoster(r.Context(), mode, teamID, year)
	if err != nil {
		log.Error().Err(err).Str("teamID", teamID).Int("year", year).Msg("team targets")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, found)
}

func (s *Server) handlePlayerSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		writeErr(w, http.StatusBadRequest, "query too short")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := s.stats.SearchPlayers(r.Context(), q, limit)
	if err != nil {
		log.Error().Err(err).Str("q", q).Msg("player search")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, hits)
}

type playerRes struct {
	Bio            *stats.PlayerBio    `json:"bio"`
	CareerBatting  *stats.BattingLine  `json:"careerBatting,omitempty"`
	CareerPitching *stats.PitchingLine `json:"careerPitching,omitempty"`
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	bio, err := s.stats.PlayerBio(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "unknown player")
			return
		}
		log.Error().Err(err).Str("playerID", playerID).Msg("player bio")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	res := playerRes{Bio: bio}
	if res.CareerBatting, err = s.stats.CareerBatting(r.Context(), playerID); err != nil {
		log.Warn().Err(err).Str("playerID", playerID).Msg("career batting")
	}
	if res.CareerPitching, err = s.stats.CareerPitching(r.Context(), playerID); err != nil {
		log.Warn().Err(err).Str("playerID", playerID).Msg("career pitching")
	}
	writeJSON(w, res)
}

func (s *Server) handlePlayerBatting(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	lines, err := s.stats.SeasonBatting(r.Context(), playerID)
	if err != nil {
		log.Error().Err(err).Str("playerID", playerID).Msg("season batting")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, lines)
}

func (s *Server) handlePlayerPitching(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	lines, err := s.stats.SeasonPitching(r.Context(), playerID)
	if err != nil {
		log.Error().Err(err).Str("playerID", playerID).Msg("season pitching")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, lines)
}
