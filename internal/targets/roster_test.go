package targets

import (
	"context"
	"errors"
	"testing"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/stats"
)

type fakeRosters struct {
	rosters map[string][]stats.RosterPlayer
	err     error
}

func (f *fakeRosters) RosterOf(_ context.Context, teamID string, yearID int) ([]stats.RosterPlayer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rosters[teamID], nil
}

func TestTargetsOnRosterFiltersAndSorts(t *testing.T) {
	rosters := &fakeRosters{rosters: map[string][]stats.RosterPlayer{
		"NYA": {
			{PlayerID: "ruthba01", Name: "Babe Ruth"},
			{PlayerID: "nobodax01", Name: "Utility Guy"},
			{PlayerID: "judgeaa01", Name: "Aaron Judge"},
			{PlayerID: "troutmi01", Name: "Mike Trout"},
		},
	}}
	sc := NewScanner(rosters, NewCatalog(testRefData()))

	mode := game.GameMode{
		ID:      "all-star-golf",
		Scoring: game.ScoringConfig{Type: game.ScoringAllStar},
	}
	found, err := sc.TargetsOnRoster(context.Background(), mode, "NYA", 2025)
	if err != nil {
		t.Fatalf("TargetsOnRoster: %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("got %d targets, want 2: %+v", len(found), found)
	}
	if found[0].PlayerID != "troutmi01" || found[0].Points != 11 {
		t.Errorf("first target = %+v, want troutmi01 at 11", found[0])
	}
	if found[1].PlayerID != "judgeaa01" || found[1].Points != 6 {
		t.Errorf("second target = %+v, want judgeaa01 at 6", found[1])
	}
}

func TestTargetsOnRosterAppliesOverrides(t *testing.T) {
	rosters := &fakeRosters{rosters: map[string][]stats.RosterPlayer{
		"LAA": {
			{PlayerID: "troutmi01", Name: "Mike Trout"},
			{PlayerID: "oddba01", Name: "One Timer"},
		},
	}}
	sc := NewScanner(rosters, NewCatalog(testRefData()))

	mode := game.GameMode{
		ID:      "all-star-golf",
		Scoring: game.ScoringConfig{Type: game.ScoringAllStar},
		Bonuses: &game.Bonuses{ScoringOverrides: []game.ScoringOverride{
			{When: game.OverrideGTE, Threshold: 10, Points: 3},
		}},
	}
	found, err := sc.TargetsOnRoster(context.Background(), mode, "LAA", 2025)
	if err != nil {
		t.Fatalf("TargetsOnRoster: %v", err)
	}

	byID := map[string]int{}
	for _, tg := range found {
		byID[tg.PlayerID] = tg.Points
	}
	if byID["troutmi01"] != 3 {
		t.Errorf("troutmi01 points = %d, want override value 3", byID["troutmi01"])
	}
	if byID["oddba01"] != 1 {
		t.Errorf("oddba01 points = %d, want raw value 1", byID["oddba01"])
	}
}

func TestTargetsOnRosterEmptyWhenNoTargets(t *testing.T) {
	rosters := &fakeRosters{rosters: map[string][]stats.RosterPlayer{
		"SEA": {{PlayerID: "nobodax01", Name: "Utility Guy"}},
	}}
	sc := NewScanner(rosters, NewCatalog(testRefData()))

	mode := game.GameMode{Scoring: game.ScoringConfig{Type: game.ScoringHOF}}
	found, err := sc.TargetsOnRoster(context.Background(), mode, "SEA", 2011)
	if err != nil {
		t.Fatalf("TargetsOnRoster: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("got %d targets, want none", len(found))
	}
}

func TestTargetsOnRosterPropagatesErrors(t *testing.T) {
	boom := errors.New("db gone")
	sc := NewScanner(&fakeRosters{err: boom}, NewCatalog(testRefData()))

	mode := game.GameMode{Scoring: game.ScoringConfig{Type: game.ScoringHOF}}
	if _, err := sc.TargetsOnRoster(context.Background(), mode, "NYA", 1927); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}

	badMode := game.GameMode{Scoring: game.ScoringConfig{Type: "mvp"}}
	if _, err := sc.TargetsOnRoster(context.Background(), badMode, "NYA", 1927); !errors.Is(err, ErrUnknownScoringType) {
		t.Fatalf("err = %v, want ErrUnknownScoringType", err)
	}
}

func TestCountTargets(t *testing.T) {
	rosters := &fakeRosters{rosters: map[string][]stats.RosterPlayer{
		"NYA": {
			{PlayerID: "ruthba01", Name: "Babe Ruth"},
			{PlayerID: "gehrilo01", Name: "Lou Gehrig"},
			{PlayerID: "nobodax01", Name: "Utility Guy"},
		},
	}}
	sc := NewScanner(rosters, NewCatalog(testRefData()))

	n, err := sc.CountTargets(context.Background(), game.ScoringHOF, "NYA", 1927)
	if err != nil {
		t.Fatalf("CountTargets: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
