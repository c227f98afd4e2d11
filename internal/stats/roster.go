// internal/stats/roster.go
//
// Team roster display projection: batters and pitchers with headline stat
// lines and inferred positions. A player counts as a pitcher when their
// mound appearances meet or exceed their field appearances.

package stats

import (
	"context"
	"database/sql"
	"fmt"
)

// Batter is one roster batter with appearance-derived position and headline
// batting stats.
type Batter struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	G        int    `json:"g"`
	Position string `json:"position"`
	HR       int    `json:"hr"`
	RBI      int    `json:"rbi"`
	SB       int    `json:"sb"`
	H        int    `json:"h"`
	AB       int    `json:"ab"`
}

// Pitcher is one roster pitcher with headline pitching stats.
type Pitcher struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	G        int    `json:"g"`
	GS       int    `json:"gs"`
	ER       int    `json:"er"`
	IPouts   int    `json:"ipOuts"`
	SO       int    `json:"so"`
	SV       int    `json:"sv"`
}

// positionGames is the per-position appearance spread used to classify a
// batter.
type positionGames struct {
	C, First, Second, Third, SS, LF, CF, RF, DH int
}

// TeamBatters returns the team-season's position players, most games first.
func (s *Store) TeamBatters(ctx context.Context, teamID string, yearID int) ([]Batter, error) {
	rows, err := s.db.QueryContext(ctx, teamBattersQuery, yearID, teamID)
	if err != nil {
		return nil, fmt.Errorf("team batters %s %d: %w", teamID, yearID, err)
	}
	defer rows.Close()

	var out []Batter
	for rows.Next() {
		var b Batter
		var first, last string
		var pg positionGames
		var hr, rbi, sb, h, ab sql.NullInt64
		if err := rows.Scan(
			&b.PlayerID, &first, &last, &b.G,
			&pg.C, &pg.First, &pg.Second, &pg.Third, &pg.SS,
			&pg.LF, &pg.CF, &pg.RF, &pg.DH,
			&hr, &rbi, &sb, &h, &ab,
		); err != nil {
			return nil, err
		}
		b.Name = joinName(first, last)
		b.Position = classifyPosition(pg)
		b.HR, b.RBI, b.SB = int(hr.Int64), int(rbi.Int64), int(sb.Int64)
		b.H, b.AB = int(h.Int64), int(ab.Int64)
		out = append(out, b)
	}
	return out, rows.Err()
}

// TeamPitchers returns the team-season's pitchers, most games first.
func (s *Store) TeamPitchers(ctx context.Context, teamID string, yearID int) ([]Pitcher, error) {
	rows, err := s.db.QueryContext(ctx, teamPitchersQuery, yearID, teamID)
	if err != nil {
		return nil, fmt.Errorf("team pitchers %s %d: %w", teamID, yearID, err)
	}
	defer rows.Close()

	var out []Pitcher
	for rows.Next() {
		var p Pitcher
		var first, last string
		var gs, er, ip, so, sv sql.NullInt64
		if err := rows.Scan(&p.PlayerID, &first, &last, &p.G, &gs, &er, &ip, &so, &sv); err != nil {
			return nil, err
		}
		p.Name = joinName(first, last)
		p.GS, p.ER, p.IPouts = int(gs.Int64), int(er.Int64), int(ip.Int64)
		p.SO, p.SV = int(so.Int64), int(sv.Int64)
		out = append(out, p)
	}
	return out, rows.Err()
}

// classifyPosition picks a display position from the appearance spread:
// a single position when it covers 75%+ of fielding games, otherwise an
// infield/outfield/utility bucket.
func classifyPosition(pg positionGames) string {
	type posCount struct {
		pos     string
		games   int
		infield bool
	}
	counts := []posCount{
		{"C", pg.C, true},
		{"1B", pg.First, true},
		{"2B", pg.Second, true},
		{"3B", pg.Third, true},
		{"SS", pg.SS, true},
		{"LF", pg.LF, false},
		{"CF", pg.CF, false},
		{"RF", pg.RF, false},
		{"DH", pg.DH, false},
	}

	total := 0
	top := posCount{}
	infield, outfield := 0, 0
	for _, c := range counts {
		if c.games == 0 {
			continue
		}
		total += c.games
		if c.games > top.games {
			top = c
		}
		if c.pos == "DH" {
			continue
		}
		if c.infield {
			infield += c.games
		} else {
			outfield += c.games
		}
	}
	if total == 0 {
		return ""
	}
	if top.games*4 >= total*3 {
		return top.pos
	}
	switch {
	case infield > 0 && outfield == 0:
		return "IF"
	case outfield > 0 && infield == 0:
		return "OF"
	default:
		return "UT"
	}
}
