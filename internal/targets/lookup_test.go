package targets

import (
	"testing"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/refdata"
)

func testRefData() *refdata.Data {
	return &refdata.Data{
		HallOfFamers: []refdata.HallOfFamer{
			{PlayerID: "ruthba01", Category: "Player"},
			{PlayerID: "gehrilo01", Category: "Player"},
			{PlayerID: "torrejo01", Category: "Manager"},
			{PlayerID: "macgrco01", Category: "Pioneer/Executive"},
		},
		AllStars: []refdata.AllStar{
			{PlayerID: "troutmi01", Selections: 11},
			{PlayerID: "judgeaa01", Selections: 6},
			{PlayerID: "oddba01", Selections: 0},
		},
		ManagersWhoPlayed: []refdata.Manager{
			{PlayerID: "torrejo01"},
			{PlayerID: "rosepe01"},
		},
	}
}

func TestHOFLookupIncludesPlayersAndManagerInductees(t *testing.T) {
	c := NewCatalog(testRefData())
	l, err := c.ForCategory(game.ScoringHOF)
	if err != nil {
		t.Fatalf("ForCategory: %v", err)
	}

	for _, id := range []string{"ruthba01", "gehrilo01", "torrejo01"} {
		if !l.Has(id) {
			t.Errorf("expected %s to be a hall target", id)
		}
		if got := l.PointsFor(id); got != 1 {
			t.Errorf("PointsFor(%s) = %d, want 1", id, got)
		}
	}
	// Inducted as an executive, never managed after playing: not a target.
	if l.Has("macgrco01") {
		t.Error("executive inductee should not be a hall target")
	}
	// Managed after playing but never inducted: not a target either.
	if l.Has("rosepe01") {
		t.Error("uninducted manager should not be a hall target")
	}
	if l.Size() != 3 {
		t.Errorf("Size = %d, want 3", l.Size())
	}
}

func TestAllStarLookupUsesSelectionCounts(t *testing.T) {
	c := NewCatalog(testRefData())
	l, err := c.ForCategory(game.ScoringAllStar)
	if err != nil {
		t.Fatalf("ForCategory: %v", err)
	}

	if got := l.PointsFor("troutmi01"); got != 11 {
		t.Errorf("PointsFor(troutmi01) = %d, want 11", got)
	}
	if got := l.PointsFor("judgeaa01"); got != 6 {
		t.Errorf("PointsFor(judgeaa01) = %d, want 6", got)
	}
	// A listed All-Star is always worth at least one point.
	if got := l.PointsFor("oddba01"); got != 1 {
		t.Errorf("PointsFor(oddba01) = %d, want 1", got)
	}
	if l.Has("ruthba01") {
		t.Error("hall of famer without selections should not be an all-star target")
	}
}

func TestManagerLookupIsFlatOnePoint(t *testing.T) {
	c := NewCatalog(testRefData())
	l, err := c.ForCategory(game.ScoringManager)
	if err != nil {
		t.Fatalf("ForCategory: %v", err)
	}

	if got := l.PointsFor("rosepe01"); got != 1 {
		t.Errorf("PointsFor(rosepe01) = %d, want 1", got)
	}
	if got := l.PointsFor("torrejo01"); got != 1 {
		t.Errorf("PointsFor(torrejo01) = %d, want 1", got)
	}
	if l.Has("ruthba01") {
		t.Error("non-manager should not be a manager target")
	}
}

func TestForCategoryCachesAndRejectsUnknown(t *testing.T) {
	c := NewCatalog(testRefData())
	a, err := c.ForCategory(game.ScoringHOF)
	if err != nil {
		t.Fatalf("first ForCategory: %v", err)
	}
	b, err := c.ForCategory(game.ScoringHOF)
	if err != nil {
		t.Fatalf("second ForCategory: %v", err)
	}
	if a != b {
		t.Error("expected cached lookup to be reused")
	}

	if _, err := c.ForCategory(game.ScoringCategory("mvp")); err == nil {
		t.Fatal("expected error for unknown scoring category")
	}
}
