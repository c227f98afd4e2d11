// internal/modes/modes.go
//
// Game mode registry.
// Responsibilities:
//   - Load mode configuration from YAML: the MODES_FILE env path when set,
//     otherwise the embedded default set shipped with the binary.
//   - Validate each mode at load time so a bad config fails startup instead
//     of a mid-game lookup.
//   - Serve modes by id (implements game.ModeSource) and list active modes in
//     declared order.
//
// Modes are immutable after Load.

package modes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	_ "embed"

	"github.com/hofgolf/go-server/internal/game"
)

//go:embed default_modes.yaml
var embeddedModes []byte

// defaultReferenceYear anchors the single-target and unrestricted pools when
// a mode leaves referenceYear unset.
const defaultReferenceYear = 2025

// Registry holds the loaded mode set.
type Registry struct {
	order []string
	byID  map[string]game.GameMode
}

type modesFile struct {
	Modes []game.GameMode `yaml:"modes"`
}

// Load reads and validates the mode configuration.
func Load() (*Registry, error) {
	raw := embeddedModes
	if path := os.Getenv("MODES_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read modes file: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse builds a registry from raw YAML. Exposed for tests and tooling.
func Parse(raw []byte) (*Registry, error) {
	var f modesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse modes: %w", err)
	}
	if len(f.Modes) == 0 {
		return nil, fmt.Errorf("parse modes: no modes defined")
	}

	r := &Registry{byID: make(map[string]game.GameMode, len(f.Modes))}
	for i := range f.Modes {
		m := f.Modes[i]
		if err := validate(&m); err != nil {
			return nil, fmt.Errorf("mode %q: %w", m.ID, err)
		}
		if _, dup := r.byID[m.ID]; dup {
			return nil, fmt.Errorf("mode %q: duplicate id", m.ID)
		}
		r.byID[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r, nil
}

// Mode returns the mode by id. Implements game.ModeSource.
func (r *Registry) Mode(id string) (game.GameMode, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// ActiveModes returns the playable modes in declared order.
func (r *Registry) ActiveModes() []game.GameMode {
	var out []game.GameMode
	for _, id := range r.order {
		if m := r.byID[id]; m.Active {
			out = append(out, m)
		}
	}
	return out
}

// All returns every mode, active or not, in declared order.
func (r *Registry) All() []game.GameMode {
	out := make([]game.GameMode, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func validate(m *game.GameMode) error {
	if m.ID == "" {
		return fmt.Errorf("missing id")
	}
	if m.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", m.Rounds)
	}
	switch m.Scoring.Type {
	case game.ScoringHOF, game.ScoringAllStar, game.ScoringManager:
	default:
		return fmt.Errorf("unknown scoring type %q", m.Scoring.Type)
	}
	switch m.Start.Pool {
	case game.PoolFreePick:
	case game.PoolSingleTarget, game.PoolUnrestricted:
		if m.Start.ReferenceYear == 0 {
			m.Start.ReferenceYear = defaultReferenceYear
		}
	default:
		return fmt.Errorf("unknown starting pool %q", m.Start.Pool)
	}
	if m.Bonuses != nil {
		for _, o := range m.Bonuses.ScoringOverrides {
			switch o.When {
			case game.OverrideGTE, game.OverrideEQ, game.OverrideLTE:
			default:
				return fmt.Errorf("unknown override op %q", o.When)
			}
		}
		if gb := m.Bonuses.GameBonus; gb != nil && gb.Condition != game.BonusCumulativeLosingRecord {
			return fmt.Errorf("unknown game bonus condition %q", gb.Condition)
		}
	}
	return nil
}
