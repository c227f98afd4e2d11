// internal/targets/roster.go
//
// Roster scanning: intersect a team-season roster with a mode's target
// lookup and price each hit through the mode's scoring overrides.

package targets

import (
	"context"
	"fmt"
	"sort"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/stats"
)

// RosterSource supplies team-season rosters. *stats.Store satisfies it.
type RosterSource interface {
	RosterOf(ctx context.Context, teamID string, yearID int) ([]stats.RosterPlayer, error)
}

// Scanner evaluates rosters against scoring categories.
type Scanner struct {
	rosters RosterSource
	catalog *Catalog
}

// NewScanner wires a roster source to a lookup catalog.
func NewScanner(rosters RosterSource, catalog *Catalog) *Scanner {
	return &Scanner{rosters: rosters, catalog: catalog}
}

// TargetsOnRoster returns every target on the team-season's roster under the
// mode's scoring category, with override-resolved point values, highest
// points first.
func (s *Scanner) TargetsOnRoster(ctx context.Context, mode game.GameMode, teamID string, yearID int) ([]game.Target, error) {
	lookup, err := s.catalog.ForCategory(mode.Scoring.Type)
	if err != nil {
		return nil, err
	}
	roster, err := s.rosters.RosterOf(ctx, teamID, yearID)
	if err != nil {
		return nil, fmt.Errorf("scan %s %d: %w", teamID, yearID, err)
	}

	overrides := mode.Overrides()
	var found []game.Target
	for _, p := range roster {
		if !lookup.Has(p.PlayerID) {
			continue
		}
		found = append(found, game.Target{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Points:   game.ResolveOverrides(lookup.PointsFor(p.PlayerID), overrides),
		})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Points != found[j].Points {
			return found[i].Points > found[j].Points
		}
		return found[i].Name < found[j].Name
	})
	return found, nil
}

// CountTargets returns how many targets the team-season roster holds. Used by
// starting pools that filter on target counts.
func (s *Scanner) CountTargets(ctx context.Context, cat game.ScoringCategory, teamID string, yearID int) (int, error) {
	lookup, err := s.catalog.ForCategory(cat)
	if err != nil {
		return 0, err
	}
	roster, err := s.rosters.RosterOf(ctx, teamID, yearID)
	if err != nil {
		return 0, fmt.Errorf("count %s %d: %w", teamID, yearID, err)
	}
	n := 0
	for _, p := range roster {
		if lookup.Has(p.PlayerID) {
			n++
		}
	}
	return n, nil
}
