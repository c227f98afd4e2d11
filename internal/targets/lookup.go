// internal/targets/lookup.go
//
// Target lookups per scoring category.
// Responsibilities:
//   - Build a point-value index over the reference lists for each scoring
//     category (hof, all-star, manager).
//   - Cache built lookups; reference data never changes after load.

package targets

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/refdata"
)

// ErrUnknownScoringType reports a mode configured with a scoring category no
// lookup builder covers.
var ErrUnknownScoringType = errors.New("unknown scoring type")

// Lookup maps playerIDs in one scoring category to their raw point values.
type Lookup struct {
	label  string
	points map[string]int
}

// Has reports whether the player is a target in this category.
func (l *Lookup) Has(playerID string) bool {
	_, ok := l.points[playerID]
	return ok
}

// PointsFor returns the player's raw point value, zero when not a target.
func (l *Lookup) PointsFor(playerID string) int {
	return l.points[playerID]
}

// Label names the category for logs.
func (l *Lookup) Label() string { return l.label }

// Size returns the number of targets in the category.
func (l *Lookup) Size() int { return len(l.points) }

// Catalog builds and caches one Lookup per scoring category over a loaded
// reference dataset.
type Catalog struct {
	ref *refdata.Data

	mu    sync.Mutex
	cache map[game.ScoringCategory]*Lookup
}

// NewCatalog wraps the reference dataset. Lookups are built lazily on first
// use.
func NewCatalog(ref *refdata.Data) *Catalog {
	return &Catalog{
		ref:   ref,
		cache: make(map[game.ScoringCategory]*Lookup),
	}
}

// ForCategory returns the category's lookup, building it on first call.
func (c *Catalog) ForCategory(cat game.ScoringCategory) (*Lookup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.cache[cat]; ok {
		return l, nil
	}

	var l *Lookup
	switch cat {
	case game.ScoringHOF:
		l = c.buildHOF()
	case game.ScoringAllStar:
		l = c.buildAllStar()
	case game.ScoringManager:
		l = c.buildManager()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScoringType, cat)
	}
	c.cache[cat] = l
	return l, nil
}

// buildHOF indexes player-category inductees, plus managers-who-played whose
// induction came in a non-player category. Every hall target is worth one
// point.
func (c *Catalog) buildHOF() *Lookup {
	points := make(map[string]int, len(c.ref.HallOfFamers))
	nonPlayerInductee := make(map[string]bool)
	for _, h := range c.ref.HallOfFamers {
		if h.Category == refdata.HOFCategoryPlayer {
			points[h.PlayerID] = 1
		} else {
			nonPlayerInductee[h.PlayerID] = true
		}
	}
	for _, m := range c.ref.ManagersWhoPlayed {
		if nonPlayerInductee[m.PlayerID] {
			points[m.PlayerID] = 1
		}
	}
	return &Lookup{label: "hall of famers", points: points}
}

// buildAllStar indexes All-Stars at their lifetime selection count.
func (c *Catalog) buildAllStar() *Lookup {
	points := make(map[string]int, len(c.ref.AllStars))
	for _, a := range c.ref.AllStars {
		n := a.Selections
		if n < 1 {
			n = 1
		}
		points[a.PlayerID] = n
	}
	return &Lookup{label: "all-stars", points: points}
}

// buildManager indexes managers who played, one point each.
func (c *Catalog) buildManager() *Lookup {
	points := make(map[string]int, len(c.ref.ManagersWhoPlayed))
	for _, m := range c.ref.ManagersWhoPlayed {
		points[m.PlayerID] = 1
	}
	return &Lookup{label: "managers who played", points: points}
}
