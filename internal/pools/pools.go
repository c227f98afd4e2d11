// internal/pools/pools.go
//
// Starting pool resolution.
// Responsibilities:
//   - Build a mode's eligible starting team-seasons per its pool strategy:
//       free-pick:      curated list filtered to the mode's year range.
//       single-target:  reference-year teams whose roster holds exactly one target.
//       unrestricted:   every reference-year team.
//   - Draw a random start, or a deterministic daily start keyed by date.
//
// Eligibility is recomputed per request; the underlying data is static, so
// repeated computation is only a handful of roster scans.

package pools

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/refdata"
)

var (
	// ErrUnknownStartingPool reports a mode configured with a pool strategy
	// no resolver covers.
	ErrUnknownStartingPool = errors.New("unknown starting pool")
	// ErrNoEligibleTeams reports a pool that resolved to zero team-seasons.
	ErrNoEligibleTeams = errors.New("no eligible starting teams")
)

// SeasonSource lists the team-seasons of a year. *stats.Store satisfies it.
type SeasonSource interface {
	TeamsInYear(ctx context.Context, yearID int) ([]game.TeamSeason, error)
}

// TargetCounter counts scoring targets on a roster. *targets.Scanner
// satisfies it.
type TargetCounter interface {
	CountTargets(ctx context.Context, cat game.ScoringCategory, teamID string, yearID int) (int, error)
}

// Resolver builds starting pools from reference data and the stats store.
type Resolver struct {
	seasons  SeasonSource
	counter  TargetCounter
	freePick []refdata.FreePickTeam
	rand     *rand.Rand
}

// NewResolver wires the pool inputs. The random source is seeded once here.
func NewResolver(seasons SeasonSource, counter TargetCounter, freePick []refdata.FreePickTeam) *Resolver {
	return &Resolver{
		seasons:  seasons,
		counter:  counter,
		freePick: freePick,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// EligibleTeams returns the mode's full starting pool, in stable order.
func (r *Resolver) EligibleTeams(ctx context.Context, mode game.GameMode) ([]game.TeamSeason, error) {
	var pool []game.TeamSeason
	var err error
	switch mode.Start.Pool {
	case game.PoolFreePick:
		pool = r.freePickPool(mode)
	case game.PoolSingleTarget:
		pool, err = r.singleTargetPool(ctx, mode)
	case game.PoolUnrestricted:
		pool, err = r.seasons.TeamsInYear(ctx, mode.Start.ReferenceYear)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStartingPool, mode.Start.Pool)
	}
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w for mode %s", ErrNoEligibleTeams, mode.ID)
	}
	return pool, nil
}

// RandomStart draws one team-season from the mode's pool.
func (r *Resolver) RandomStart(ctx context.Context, mode game.GameMode) (game.TeamSeason, error) {
	pool, err := r.EligibleTeams(ctx, mode)
	if err != nil {
		return game.TeamSeason{}, err
	}
	return pool[r.rand.Intn(len(pool))], nil
}

// DailyStart returns the deterministic start for a date: every player who
// asks on the same UTC day gets the same team.
func (r *Resolver) DailyStart(ctx context.Context, mode game.GameMode, date time.Time, salt string) (game.TeamSeason, error) {
	pool, err := r.EligibleTeams(ctx, mode)
	if err != nil {
		return game.TeamSeason{}, err
	}
	return pool[dailyIndex(date, salt, len(pool))], nil
}

// freePickPool filters the curated list to the mode's inclusive year range.
// A zero range admits every curated team.
func (r *Resolver) freePickPool(mode game.GameMode) []game.TeamSeason {
	lo, hi := mode.Start.YearRange[0], mode.Start.YearRange[1]
	var pool []game.TeamSeason
	for _, t := range r.freePick {
		if lo != 0 && t.YearID < lo {
			continue
		}
		if hi != 0 && t.YearID > hi {
			continue
		}
		pool = append(pool, game.TeamSeason{TeamID: t.TeamID, YearID: t.YearID, TeamName: t.Name})
	}
	return pool
}

// singleTargetPool keeps reference-year teams whose roster holds exactly one
// target under the mode's scoring category.
func (r *Resolver) singleTargetPool(ctx context.Context, mode game.GameMode) ([]game.TeamSeason, error) {
	all, err := r.seasons.TeamsInYear(ctx, mode.Start.ReferenceYear)
	if err != nil {
		return nil, err
	}
	var pool []game.TeamSeason
	for _, t := range all {
		n, err := r.counter.CountTargets(ctx, mode.Scoring.Type, t.TeamID, t.YearID)
		if err != nil {
			return nil, err
		}
		if n == 1 {
			pool = append(pool, t)
		}
	}
	return pool, nil
}

// dailyIndex maps a UTC date to a pool index using HMAC(salt, YYYY-MM-DD).
func dailyIndex(date time.Time, salt string, poolLen int) int {
	if poolLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(date.UTC().Format("2006-01-02")))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(poolLen))
}
