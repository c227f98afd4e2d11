// internal/stats/store.go
//
// Read-only access to the Lahman historical statistics database (SQLite).
// Responsibilities:
//   - Core engine queries: team-season rosters and win/loss records.
//   - Browse/display projections: standings, team roster stat lines with
//     inferred positions, per-player season and career aggregates, search.
//
// The database is static reference data; every method is a pure projection
// with no side effects.

package stats

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hofgolf/go-server/internal/game"
)

// Store wraps the Lahman database handle.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle. The caller owns the handle's lifecycle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RosterPlayer is one distinct member of a team-season roster.
type RosterPlayer struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// TeamRecord is a team-season's win/loss record and display name.
type TeamRecord struct {
	W    int    `json:"w"`
	L    int    `json:"l"`
	Name string `json:"name"`
}

// ErrNotFound reports a missing team-season or player.
var ErrNotFound = sql.ErrNoRows

// RosterOf returns the distinct players with any batting or pitching
// appearance for the team-season, with display names.
func (s *Store) RosterOf(ctx context.Context, teamID string, yearID int) ([]RosterPlayer, error) {
	rows, err := s.db.QueryContext(ctx, rosterQuery, yearID, teamID, yearID, teamID)
	if err != nil {
		return nil, fmt.Errorf("roster %s %d: %w", teamID, yearID, err)
	}
	defer rows.Close()

	var out []RosterPlayer
	for rows.Next() {
		var id, first, last string
		if err := rows.Scan(&id, &first, &last); err != nil {
			return nil, err
		}
		out = append(out, RosterPlayer{PlayerID: id, Name: joinName(first, last)})
	}
	return out, rows.Err()
}

// RecordOf returns the team-season's win/loss record and name.
func (s *Store) RecordOf(ctx context.Context, teamID string, yearID int) (TeamRecord, error) {
	var rec TeamRecord
	err := s.db.QueryRowContext(ctx, recordQuery, yearID, teamID).
		Scan(&rec.W, &rec.L, &rec.Name)
	if err != nil {
		return TeamRecord{}, fmt.Errorf("record %s %d: %w", teamID, yearID, err)
	}
	return rec, nil
}

// TeamsInYear returns every team-season of a year.
func (s *Store) TeamsInYear(ctx context.Context, yearID int) ([]game.TeamSeason, error) {
	rows, err := s.db.QueryContext(ctx, teamsInYearQuery, yearID)
	if err != nil {
		return nil, fmt.Errorf("teams in %d: %w", yearID, err)
	}
	defer rows.Close()

	var out []game.TeamSeason
	for rows.Next() {
		var t game.TeamSeason
		if err := rows.Scan(&t.TeamID, &t.YearID, &t.TeamName); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TeamStanding is one row of a season's standings, grouped by league and
// division by the caller.
type TeamStanding struct {
	TeamID string `json:"teamID"`
	Name   string `json:"name"`
	LgID   string `json:"lgID"`
	DivID  string `json:"divID"`
	W      int    `json:"w"`
	L      int    `json:"l"`
}

// Standings returns a year's teams ordered by league, division, and wins.
func (s *Store) Standings(ctx context.Context, yearID int) ([]TeamStanding, error) {
	rows, err := s.db.QueryContext(ctx, standingsQuery, yearID)
	if err != nil {
		return nil, fmt.Errorf("standings %d: %w", yearID, err)
	}
	defer rows.Close()

	var out []TeamStanding
	for rows.Next() {
		var t TeamStanding
		var div sql.NullString
		if err := rows.Scan(&t.TeamID, &t.Name, &t.LgID, &div, &t.W, &t.L); err != nil {
			return nil, err
		}
		t.DivID = div.String
		out = append(out, t)
	}
	return out, rows.Err()
}

// PlayerSearchResult is one hit of a player name search, newest careers
// first.
type PlayerSearchResult struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	LastYear int    `json:"lastYear"`
}

// SearchPlayers matches player names against a substring, most recent final
// season first.
func (s *Store) SearchPlayers(ctx context.Context, query string, limit int) ([]PlayerSearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := s.db.QueryContext(ctx, playerSearchQuery, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	var out []PlayerSearchResult
	for rows.Next() {
		var r PlayerSearchResult
		var first, last string
		if err := rows.Scan(&r.PlayerID, &first, &last, &r.LastYear); err != nil {
			return nil, err
		}
		r.Name = joinName(first, last)
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayerBio is the People-table profile of one player.
type PlayerBio struct {
	PlayerID  string `json:"playerID"`
	Name      string `json:"name"`
	BirthYear int    `json:"birthYear,omitempty"`
	Debut     string `json:"debut,omitempty"`
	FinalGame string `json:"finalGame,omitempty"`
	FirstYear int    `json:"firstYear,omitempty"`
	LastYear  int    `json:"lastYear,omitempty"`
}

// PlayerBio loads a player's profile plus the year range of their playing
// appearances.
func (s *Store) PlayerBio(ctx context.Context, playerID string) (*PlayerBio, error) {
	var bio PlayerBio
	var first, last string
	var birth sql.NullInt64
	var debut, final sql.NullString
	err := s.db.QueryRowContext(ctx, playerBioQuery, playerID).
		Scan(&bio.PlayerID, &first, &last, &birth, &debut, &final)
	if err != nil {
		return nil, fmt.Errorf("player bio %s: %w", playerID, err)
	}
	bio.Name = joinName(first, last)
	bio.BirthYear = int(birth.Int64)
	bio.Debut = debut.String
	bio.FinalGame = final.String

	var minYear, maxYear sql.NullInt64
	err = s.db.QueryRowContext(ctx, playedYearRangeQuery, playerID, playerID).
		Scan(&minYear, &maxYear)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("played years %s: %w", playerID, err)
	}
	bio.FirstYear = int(minYear.Int64)
	bio.LastYear = int(maxYear.Int64)
	return &bio, nil
}

// BattingLine is a summed batting stat line for one season+team or a career.
type BattingLine struct {
	YearID  int    `json:"yearID,omitempty"`
	TeamID  string `json:"teamID,omitempty"`
	G       int    `json:"g"`
	AB      int    `json:"ab"`
	R       int    `json:"r"`
	H       int    `json:"h"`
	Doubles int    `json:"doubles"`
	Triples int    `json:"triples"`
	HR      int    `json:"hr"`
	RBI     int    `json:"rbi"`
	BB      int    `json:"bb"`
	SO      int    `json:"so"`
	SB      int    `json:"sb"`
}

// SeasonBatting returns per-season batting lines (stints summed), career
// order.
func (s *Store) SeasonBatting(ctx context.Context, playerID string) ([]BattingLine, error) {
	rows, err := s.db.QueryContext(ctx, seasonBattingQuery, playerID)
	if err != nil {
		return nil, fmt.Errorf("season batting %s: %w", playerID, err)
	}
	defer rows.Close()

	var out []BattingLine
	for rows.Next() {
		var l BattingLine
		cols := []any{&l.YearID, &l.TeamID}
		if err := rows.Scan(append(cols, battingDest(&l)...)...); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CareerBatting returns the summed career batting line, or nil when the
// player has no batting rows.
func (s *Store) CareerBatting(ctx context.Context, playerID string) (*BattingLine, error) {
	var l BattingLine
	var g sql.NullInt64
	dest := battingDest(&l)
	dest[0] = &g // SUM over zero rows yields NULL
	err := s.db.QueryRowContext(ctx, careerBattingQuery, playerID).Scan(dest...)
	if err != nil {
		return nil, fmt.Errorf("career batting %s: %w", playerID, err)
	}
	if !g.Valid {
		return nil, nil
	}
	l.G = int(g.Int64)
	return &l, nil
}

// battingDest builds the scan destinations for a batting line's stat
// columns, tolerating NULLs in the old-era data.
func battingDest(l *BattingLine) []any {
	return []any{
		nullInt(&l.G), nullInt(&l.AB), nullInt(&l.R), nullInt(&l.H),
		nullInt(&l.Doubles), nullInt(&l.Triples), nullInt(&l.HR),
		nullInt(&l.RBI), nullInt(&l.BB), nullInt(&l.SO), nullInt(&l.SB),
	}
}

// PitchingLine is a summed pitching stat line for one season+team or a
// career.
type PitchingLine struct {
	YearID int    `json:"yearID,omitempty"`
	TeamID string `json:"teamID,omitempty"`
	W      int    `json:"w"`
	L      int    `json:"l"`
	G      int    `json:"g"`
	GS     int    `json:"gs"`
	SV     int    `json:"sv"`
	IPouts int    `json:"ipOuts"`
	SO     int    `json:"so"`
	BB     int    `json:"bb"`
	H      int    `json:"h"`
	ER     int    `json:"er"`
}

// SeasonPitching returns per-season pitching lines (stints summed).
func (s *Store) SeasonPitching(ctx context.Context, playerID string) ([]PitchingLine, error) {
	rows, err := s.db.QueryContext(ctx, seasonPitchingQuery, playerID)
	if err != nil {
		return nil, fmt.Errorf("season pitching %s: %w", playerID, err)
	}
	defer rows.Close()

	var out []PitchingLine
	for rows.Next() {
		var l PitchingLine
		cols := []any{&l.YearID, &l.TeamID}
		if err := rows.Scan(append(cols, pitchingDest(&l)...)...); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CareerPitching returns the summed career pitching line, or nil when the
// player never pitched.
func (s *Store) CareerPitching(ctx context.Context, playerID string) (*PitchingLine, error) {
	var l PitchingLine
	var w sql.NullInt64
	dest := pitchingDest(&l)
	dest[0] = &w
	err := s.db.QueryRowContext(ctx, careerPitchingQuery, playerID).Scan(dest...)
	if err != nil {
		return nil, fmt.Errorf("career pitching %s: %w", playerID, err)
	}
	if !w.Valid {
		return nil, nil
	}
	l.W = int(w.Int64)
	return &l, nil
}

func pitchingDest(l *PitchingLine) []any {
	return []any{
		nullInt(&l.W), nullInt(&l.L), nullInt(&l.G), nullInt(&l.GS),
		nullInt(&l.SV), nullInt(&l.IPouts), nullInt(&l.SO), nullInt(&l.BB),
		nullInt(&l.H), nullInt(&l.ER),
	}
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// nullIntScanner scans a nullable integer column into an int, NULL as 0.
type nullIntScanner struct{ dst *int }

func (n nullIntScanner) Scan(src any) error {
	var v sql.NullInt64
	if err := v.Scan(src); err != nil {
		return err
	}
	*n.dst = int(v.Int64)
	return nil
}

func nullInt(dst *int) sql.Scanner { return nullIntScanner{dst: dst} }
