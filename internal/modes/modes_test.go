package modes

import (
	"strings"
	"testing"

	"github.com/hofgolf/go-server/internal/game"
)

func TestEmbeddedDefaultsLoad(t *testing.T) {
	r, err := Parse(embeddedModes)
	if err != nil {
		t.Fatalf("Parse embedded defaults: %v", err)
	}

	for _, id := range []string{"hof-golf", "all-star-golf", "manager-golf"} {
		m, ok := r.Mode(id)
		if !ok {
			t.Fatalf("missing shipped mode %q", id)
		}
		if m.Rounds != 3 {
			t.Errorf("%s rounds = %d, want 3", id, m.Rounds)
		}
		if !m.Scoring.UniqueOnly {
			t.Errorf("%s should dedupe targets", id)
		}
		if !m.Start.Freebie {
			t.Errorf("%s should pre-credit the starting roster", id)
		}
	}

	hof, _ := r.Mode("hof-golf")
	if hof.Start.Pool != game.PoolFreePick || hof.Start.YearRange != [2]int{2001, 2016} {
		t.Errorf("hof-golf start = %+v", hof.Start)
	}

	allstar, _ := r.Mode("all-star-golf")
	if allstar.Start.Pool != game.PoolSingleTarget || allstar.Start.ReferenceYear != 2025 {
		t.Errorf("all-star-golf start = %+v", allstar.Start)
	}
	if len(allstar.Overrides()) != 2 {
		t.Errorf("all-star-golf overrides = %+v", allstar.Overrides())
	}

	manager, _ := r.Mode("manager-golf")
	if manager.Bonuses == nil || manager.Bonuses.GameBonus == nil {
		t.Fatalf("manager-golf missing game bonus")
	}
	if gb := manager.Bonuses.GameBonus; gb.Points != 5 || gb.Condition != game.BonusCumulativeLosingRecord {
		t.Errorf("manager-golf bonus = %+v", gb)
	}

	if got := len(r.ActiveModes()); got != 3 {
		t.Errorf("active modes = %d, want 3", got)
	}
}

func TestReferenceYearDefaults(t *testing.T) {
	r, err := Parse([]byte(`
modes:
  - id: quick
    name: Quick
    active: true
    rounds: 2
    scoring: { type: manager, uniqueOnly: true }
    start: { pool: unrestricted }
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, _ := r.Mode("quick")
	if m.Start.ReferenceYear != 2025 {
		t.Errorf("reference year = %d, want default 2025", m.Start.ReferenceYear)
	}
}

func TestInactiveModesHiddenFromActiveList(t *testing.T) {
	r, err := Parse([]byte(`
modes:
  - id: live
    rounds: 3
    active: true
    scoring: { type: hof }
    start: { pool: free-pick }
  - id: shelved
    rounds: 3
    active: false
    scoring: { type: hof }
    start: { pool: free-pick }
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	active := r.ActiveModes()
	if len(active) != 1 || active[0].ID != "live" {
		t.Errorf("active = %+v", active)
	}
	if _, ok := r.Mode("shelved"); !ok {
		t.Error("inactive mode should still resolve by id")
	}
	if len(r.All()) != 2 {
		t.Errorf("All() = %d modes, want 2", len(r.All()))
	}
}

func TestValidationRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "zero rounds",
			yaml: `modes: [{id: x, rounds: 0, scoring: {type: hof}, start: {pool: free-pick}}]`,
			want: "rounds",
		},
		{
			name: "unknown scoring",
			yaml: `modes: [{id: x, rounds: 3, scoring: {type: mvp}, start: {pool: free-pick}}]`,
			want: "scoring type",
		},
		{
			name: "unknown pool",
			yaml: `modes: [{id: x, rounds: 3, scoring: {type: hof}, start: {pool: coin-flip}}]`,
			want: "starting pool",
		},
		{
			name: "unknown override op",
			yaml: `modes: [{id: x, rounds: 3, scoring: {type: hof}, start: {pool: free-pick}, bonuses: {scoringOverrides: [{when: near, threshold: 1, points: 1}]}}]`,
			want: "override op",
		},
		{
			name: "unknown bonus condition",
			yaml: `modes: [{id: x, rounds: 3, scoring: {type: hof}, start: {pool: free-pick}, bonuses: {gameBonus: {points: 5, condition: sweep}}}]`,
			want: "bonus condition",
		},
		{
			name: "duplicate id",
			yaml: `modes: [{id: x, rounds: 3, scoring: {type: hof}, start: {pool: free-pick}}, {id: x, rounds: 3, scoring: {type: hof}, start: {pool: free-pick}}]`,
			want: "duplicate",
		},
		{
			name: "empty file",
			yaml: `modes: []`,
			want: "no modes",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %q, want mention of %q", err, tc.want)
			}
		})
	}
}
