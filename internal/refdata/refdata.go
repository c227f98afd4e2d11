// internal/refdata/refdata.go
//
// Static reference datasets backing target lookups and starting pools.
//
// Datasets:
//   - "hall of famers":      all-time inductees with their induction category.
//   - "all stars":           every selected All-Star with a lifetime selection count.
//   - "managers who played": managers with playing appearances of their own.
//   - "free pick teams":     curated team-seasons with zero current HOF targets.
//
// Loading behavior (Load):
//   Each list reads from a file pointed to by its environment variable when
//   set, otherwise from the embedded default shipped with the binary:
//     HOF_FILE             hall_of_famers.json
//     ALL_STARS_FILE       all_stars.json
//     MANAGERS_FILE        managers_who_played.json
//     FREE_PICK_TEAMS_FILE free_pick_teams.json
//
// Constraints:
//   • Lists are immutable after Load.
//   • An empty hall-of-famer, all-star, or manager list is a data error.
//   • No package-level cache: callers own the returned Data and inject it
//     where needed.

package refdata

import (
	"encoding/json"
	"fmt"
	"os"

	_ "embed"
)

//go:embed hall_of_famers.json
var embeddedHallOfFamers []byte

//go:embed all_stars.json
var embeddedAllStars []byte

//go:embed managers_who_played.json
var embeddedManagers []byte

//go:embed free_pick_teams.json
var embeddedFreePickTeams []byte

// HallOfFamer is one Hall of Fame induction.
type HallOfFamer struct {
	PlayerID string `json:"playerID"`
	// Category is the induction category: "Player", "Manager", "Umpire",
	// "Pioneer/Executive".
	Category string `json:"category"`
}

// HOFCategoryPlayer is the induction category that makes a Hall of Famer a
// target by itself.
const HOFCategoryPlayer = "Player"

// AllStar is a player with at least one All-Star selection.
type AllStar struct {
	PlayerID   string `json:"playerID"`
	Selections int    `json:"allStarSelections"`
}

// Manager is a manager who also has playing appearances.
type Manager struct {
	PlayerID string `json:"playerID"`
}

// FreePickTeam is one curated starting team-season.
type FreePickTeam struct {
	TeamID string `json:"teamID"`
	YearID int    `json:"yearID"`
	Name   string `json:"name"`
}

// Data bundles every reference list for injection into lookups and pools.
type Data struct {
	HallOfFamers      []HallOfFamer
	AllStars          []AllStar
	ManagersWhoPlayed []Manager
	FreePickTeams     []FreePickTeam
}

// Load reads all reference lists, preferring env-configured files over the
// embedded defaults.
func Load() (*Data, error) {
	d := &Data{}
	if err := loadList("HOF_FILE", embeddedHallOfFamers, &d.HallOfFamers); err != nil {
		return nil, fmt.Errorf("hall of famers: %w", err)
	}
	if err := loadList("ALL_STARS_FILE", embeddedAllStars, &d.AllStars); err != nil {
		return nil, fmt.Errorf("all stars: %w", err)
	}
	if err := loadList("MANAGERS_FILE", embeddedManagers, &d.ManagersWhoPlayed); err != nil {
		return nil, fmt.Errorf("managers who played: %w", err)
	}
	if err := loadList("FREE_PICK_TEAMS_FILE", embeddedFreePickTeams, &d.FreePickTeams); err != nil {
		return nil, fmt.Errorf("free pick teams: %w", err)
	}

	if len(d.HallOfFamers) == 0 {
		return nil, fmt.Errorf("hall of famers: list is empty")
	}
	if len(d.AllStars) == 0 {
		return nil, fmt.Errorf("all stars: list is empty")
	}
	if len(d.ManagersWhoPlayed) == 0 {
		return nil, fmt.Errorf("managers who played: list is empty")
	}
	return d, nil
}

// loadList unmarshals one dataset from the env-pointed file or the embedded
// fallback.
func loadList(envKey string, embedded []byte, out any) error {
	raw := embedded
	if path := os.Getenv(envKey); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, out)
}
