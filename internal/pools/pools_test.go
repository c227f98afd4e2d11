package pools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/refdata"
)

type fakeSeasons struct {
	byYear map[int][]game.TeamSeason
	err    error
}

func (f *fakeSeasons) TeamsInYear(_ context.Context, yearID int) ([]game.TeamSeason, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byYear[yearID], nil
}

type fakeCounter struct {
	counts map[string]int
}

func (f *fakeCounter) CountTargets(_ context.Context, _ game.ScoringCategory, teamID string, _ int) (int, error) {
	return f.counts[teamID], nil
}

func testFreePick() []refdata.FreePickTeam {
	return []refdata.FreePickTeam{
		{TeamID: "MON", YearID: 2001, Name: "Montreal Expos"},
		{TeamID: "KCA", YearID: 2005, Name: "Kansas City Royals"},
		{TeamID: "TBA", YearID: 2016, Name: "Tampa Bay Rays"},
	}
}

func seasons2025() *fakeSeasons {
	return &fakeSeasons{byYear: map[int][]game.TeamSeason{
		2025: {
			{TeamID: "NYA", YearID: 2025, TeamName: "New York Yankees"},
			{TeamID: "LAN", YearID: 2025, TeamName: "Los Angeles Dodgers"},
			{TeamID: "COL", YearID: 2025, TeamName: "Colorado Rockies"},
		},
	}}
}

func TestFreePickPoolFiltersYearRange(t *testing.T) {
	r := NewResolver(seasons2025(), &fakeCounter{}, testFreePick())
	mode := game.GameMode{
		ID:    "hof-golf",
		Start: game.StartConfig{Pool: game.PoolFreePick, YearRange: [2]int{2001, 2010}},
	}

	pool, err := r.EligibleTeams(context.Background(), mode)
	if err != nil {
		t.Fatalf("EligibleTeams: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("got %d teams, want 2: %+v", len(pool), pool)
	}
	if pool[0].TeamID != "MON" || pool[1].TeamID != "KCA" {
		t.Errorf("pool = %+v, want MON then KCA", pool)
	}
}

func TestFreePickPoolUnboundedWithZeroRange(t *testing.T) {
	r := NewResolver(seasons2025(), &fakeCounter{}, testFreePick())
	mode := game.GameMode{Start: game.StartConfig{Pool: game.PoolFreePick}}

	pool, err := r.EligibleTeams(context.Background(), mode)
	if err != nil {
		t.Fatalf("EligibleTeams: %v", err)
	}
	if len(pool) != 3 {
		t.Errorf("got %d teams, want all 3", len(pool))
	}
}

func TestSingleTargetPoolKeepsExactlyOne(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{"NYA": 4, "LAN": 1, "COL": 0}}
	r := NewResolver(seasons2025(), counter, nil)
	mode := game.GameMode{
		Scoring: game.ScoringConfig{Type: game.ScoringAllStar},
		Start:   game.StartConfig{Pool: game.PoolSingleTarget, ReferenceYear: 2025},
	}

	pool, err := r.EligibleTeams(context.Background(), mode)
	if err != nil {
		t.Fatalf("EligibleTeams: %v", err)
	}
	if len(pool) != 1 || pool[0].TeamID != "LAN" {
		t.Fatalf("pool = %+v, want exactly LAN", pool)
	}
}

func TestUnrestrictedPoolIsWholeYear(t *testing.T) {
	r := NewResolver(seasons2025(), &fakeCounter{}, nil)
	mode := game.GameMode{Start: game.StartConfig{Pool: game.PoolUnrestricted, ReferenceYear: 2025}}

	pool, err := r.EligibleTeams(context.Background(), mode)
	if err != nil {
		t.Fatalf("EligibleTeams: %v", err)
	}
	if len(pool) != 3 {
		t.Errorf("got %d teams, want 3", len(pool))
	}
}

func TestEmptyPoolErrors(t *testing.T) {
	r := NewResolver(&fakeSeasons{}, &fakeCounter{}, nil)
	mode := game.GameMode{ID: "manager-golf", Start: game.StartConfig{Pool: game.PoolUnrestricted, ReferenceYear: 2025}}

	if _, err := r.EligibleTeams(context.Background(), mode); !errors.Is(err, ErrNoEligibleTeams) {
		t.Fatalf("err = %v, want ErrNoEligibleTeams", err)
	}
}

func TestUnknownPoolErrors(t *testing.T) {
	r := NewResolver(&fakeSeasons{}, &fakeCounter{}, nil)
	mode := game.GameMode{Start: game.StartConfig{Pool: "coin-flip"}}

	if _, err := r.EligibleTeams(context.Background(), mode); !errors.Is(err, ErrUnknownStartingPool) {
		t.Fatalf("err = %v, want ErrUnknownStartingPool", err)
	}
}

func TestRandomStartDrawsFromPool(t *testing.T) {
	r := NewResolver(seasons2025(), &fakeCounter{}, nil)
	mode := game.GameMode{Start: game.StartConfig{Pool: game.PoolUnrestricted, ReferenceYear: 2025}}

	valid := map[string]bool{"NYA": true, "LAN": true, "COL": true}
	for i := 0; i < 10; i++ {
		start, err := r.RandomStart(context.Background(), mode)
		if err != nil {
			t.Fatalf("RandomStart: %v", err)
		}
		if !valid[start.TeamID] {
			t.Fatalf("drew %s, not in pool", start.TeamID)
		}
	}
}

func TestDailyStartIsDeterministic(t *testing.T) {
	r := NewResolver(seasons2025(), &fakeCounter{}, nil)
	mode := game.GameMode{Start: game.StartConfig{Pool: game.PoolUnrestricted, ReferenceYear: 2025}}

	day := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	a, err := r.DailyStart(context.Background(), mode, day, "salt")
	if err != nil {
		t.Fatalf("DailyStart: %v", err)
	}
	// Same UTC day, different wall clock.
	b, err := r.DailyStart(context.Background(), mode, day.Add(5*time.Hour), "salt")
	if err != nil {
		t.Fatalf("DailyStart: %v", err)
	}
	if a != b {
		t.Errorf("same day drew %v then %v", a, b)
	}

	// A different salt reshuffles the schedule across days.
	other := 0
	for i := 0; i < 14; i++ {
		d := day.AddDate(0, 0, i)
		x, _ := r.DailyStart(context.Background(), mode, d, "salt")
		y, _ := r.DailyStart(context.Background(), mode, d, "pepper")
		if x != y {
			other++
		}
	}
	if other == 0 {
		t.Error("expected salts to diverge on at least one day")
	}
}
