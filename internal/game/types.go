// internal/game/types.go
//
// Core type definitions for the HOF Golf game engine.
// Defines:
//   - GameMode: static per-mode configuration (rounds, scoring, starting pool, bonuses).
//   - Target:   a roster member worth points under the mode's scoring category.
//   - Round:    one visited team-season with its targets and points.
//   - ActiveGame / SavedGame: the in-progress aggregate and its archived snapshot.

package game

import "fmt"

// ScoringCategory selects which reference list qualifies roster players
// as targets.
type ScoringCategory string

const (
	ScoringHOF     ScoringCategory = "hof"
	ScoringAllStar ScoringCategory = "all-star"
	ScoringManager ScoringCategory = "manager"
)

// PoolStrategy selects how a mode's starting team-season pool is built.
type PoolStrategy string

const (
	// PoolFreePick draws from a curated list of team-seasons filtered to the
	// mode's year range.
	PoolFreePick PoolStrategy = "free-pick"
	// PoolSingleTarget draws from reference-year teams whose roster holds
	// exactly one target.
	PoolSingleTarget PoolStrategy = "single-target"
	// PoolUnrestricted draws from every reference-year team.
	PoolUnrestricted PoolStrategy = "unrestricted"
)

// OverrideOp is the comparison used by a scoring override rule.
type OverrideOp string

const (
	OverrideGTE OverrideOp = "gte"
	OverrideEQ  OverrideOp = "eq"
	OverrideLTE OverrideOp = "lte"
)

// ScoringOverride replaces a raw target point value when its predicate
// matches. Rules are evaluated in declared order; the first match wins.
type ScoringOverride struct {
	When      OverrideOp `json:"when" yaml:"when"`
	Threshold int        `json:"threshold" yaml:"threshold"`
	Points    int        `json:"points" yaml:"points"`
}

// GameBonus is evaluated once at game end. The only implemented condition is
// "cumulative-losing-record": award Points if losses exceed wins summed
// across every round visited.
type GameBonus struct {
	Points    int    `json:"points" yaml:"points"`
	Condition string `json:"condition" yaml:"condition"`
}

const BonusCumulativeLosingRecord = "cumulative-losing-record"

// Bonuses groups a mode's optional scoring adjustments.
type Bonuses struct {
	ScoringOverrides []ScoringOverride `json:"scoringOverrides,omitempty" yaml:"scoringOverrides,omitempty"`
	GameBonus        *GameBonus        `json:"gameBonus,omitempty" yaml:"gameBonus,omitempty"`
}

// ScoringConfig describes how a mode scores targets.
type ScoringConfig struct {
	Type ScoringCategory `json:"type" yaml:"type"`
	// TargetSet is the display noun for targets ("Hall of Famers", "All-Stars").
	TargetSet string `json:"targetSet" yaml:"targetSet"`
	// PointsPer is display copy describing the baseline value ("1", "selections").
	PointsPer string `json:"pointsPer" yaml:"pointsPer"`
	// UniqueOnly controls seen-set deduplication: when true (every shipped
	// mode), a target is credited at most once per game.
	UniqueOnly bool `json:"uniqueOnly" yaml:"uniqueOnly"`
}

// StartConfig describes how a mode picks its starting team-season.
type StartConfig struct {
	Pool PoolStrategy `json:"pool" yaml:"pool"`
	// YearRange bounds the free-pick pool (inclusive). Ignored by other pools.
	YearRange [2]int `json:"yearRange" yaml:"yearRange"`
	// ReferenceYear anchors the single-target and unrestricted pools.
	ReferenceYear int `json:"referenceYear" yaml:"referenceYear"`
	// Freebie marks modes whose round 0 pre-credits the starting roster.
	Freebie bool `json:"freebie" yaml:"freebie"`
}

// ModeInfo is human-readable instructional copy shown by clients.
type ModeInfo struct {
	Overview  string   `json:"overview" yaml:"overview"`
	HowToPlay []string `json:"howToPlay,omitempty" yaml:"howToPlay,omitempty"`
	Bullets   []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

// GameMode is one playable mode, loaded once from configuration and treated
// as immutable afterwards.
type GameMode struct {
	ID      string        `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Label   string        `json:"label" yaml:"label"`
	Emoji   string        `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Active  bool          `json:"active" yaml:"active"`
	Rounds  int           `json:"rounds" yaml:"rounds"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Start   StartConfig   `json:"start" yaml:"start"`
	Bonuses *Bonuses      `json:"bonuses,omitempty" yaml:"bonuses,omitempty"`
	Info    ModeInfo      `json:"info" yaml:"info"`
}

// Overrides returns the mode's scoring override rules, or nil.
func (m GameMode) Overrides() []ScoringOverride {
	if m.Bonuses == nil {
		return nil
	}
	return m.Bonuses.ScoringOverrides
}

// TeamSeason identifies one team in one year. It is a reference value looked
// up fresh from the stats store, never owned by game state.
type TeamSeason struct {
	TeamID   string `json:"teamID"`
	YearID   int    `json:"yearID"`
	TeamName string `json:"teamName"`
}

func (t TeamSeason) String() string {
	return fmt.Sprintf("%d %s", t.YearID, t.TeamID)
}

// Target is a roster member qualifying under the mode's scoring category,
// carrying its final (override-resolved) point value.
type Target struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
}

// Round is one step of a game: the team-season visited, the player picked to
// leave it, every target present on the roster (seen or not, for display),
// and the points earned from newly discovered targets.
type Round struct {
	TeamID           string   `json:"teamID"`
	TeamName         string   `json:"teamName"`
	YearID           int      `json:"yearID"`
	PickedPlayerID   *string  `json:"pickedPlayerID"`
	PickedPlayerName *string  `json:"pickedPlayerName"`
	TargetsFound     []Target `json:"targetsFound"`
	PointsEarned     int      `json:"pointsEarned"`
	TeamW            int      `json:"teamW"`
	TeamL            int      `json:"teamL"`
	TimedOut         bool     `json:"timedOut"`
}

// ActiveGame is the sole mutable aggregate while a game is in progress.
// Round 0 is created atomically with the game, so Rounds is never empty.
type ActiveGame struct {
	ID          string   `json:"id"`
	ModeID      string   `json:"modeId"`
	StartedAt   int64    `json:"startedAt"` // unix milliseconds
	Rounds      []Round  `json:"rounds"`
	SeenTargets []string `json:"seenTargets"`
	TotalPoints int      `json:"totalPoints"`
	Finished    bool     `json:"finished"`
	Timed       bool     `json:"timed"`
	BonusPoints int      `json:"bonusPoints"`
}

// SavedGame is the immutable snapshot archived at game completion.
// TotalPoints is the final, post-bonus total.
type SavedGame struct {
	ID          string  `json:"id"`
	ModeID      string  `json:"modeId"`
	StartedAt   int64   `json:"startedAt"`
	FinishedAt  int64   `json:"finishedAt"`
	TotalPoints int     `json:"totalPoints"`
	Rounds      []Round `json:"rounds"`
	Timed       bool    `json:"timed"`
	BonusPoints int     `json:"bonusPoints"`
}

// Record is a cumulative win/loss tally.
type Record struct {
	W int `json:"w"`
	L int `json:"l"`
}
