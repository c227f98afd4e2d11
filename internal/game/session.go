// internal/game/session.go
//
// Game session engine for HOF Golf.
// Responsibilities:
//   - Own the active-game state machine: NoGame → InProgress → NoGame.
//   - Apply round transitions: target dedup against the seen set, scoring,
//     timeout handling, auto-finish once the mode's round quota is met.
//   - Evaluate the end-of-game bonus and archive finished games into the
//     history/best-score ledger.
//   - Persist state after every mutation (best effort; the in-memory state is
//     the source of truth and storage may lag).
//   - Notify an optional broadcaster with a fresh snapshot on every change.
//
// Notes:
//   - Operations are guarded no-ops when no game is active or the game is
//     finished; duplicate or late UI events are tolerated by design.
//   - Auto-finish is decided in exactly one place (roundQuotaMet): the game is
//     finished once the round list has grown past the mode's configured round
//     count, i.e. the freebie round 0 plus mode.Rounds navigated rounds.
//     Both PickPlayer and NavigateToTeam consult the same helper.

package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ModeSource resolves mode configuration by id for an in-flight game.
type ModeSource interface {
	Mode(id string) (GameMode, bool)
}

// Store persists session state between process restarts. Implementations live
// in internal/store; a failed save never fails the user operation.
type Store interface {
	// SaveActive persists the active game; nil clears it.
	SaveActive(ctx context.Context, g *ActiveGame) error
	// LoadActive returns the persisted active game, or nil if none.
	LoadActive(ctx context.Context) (*ActiveGame, error)
	SaveHistory(ctx context.Context, h []SavedGame) error
	LoadHistory(ctx context.Context) ([]SavedGame, error)
	SaveBestScores(ctx context.Context, b map[string]int) error
	LoadBestScores(ctx context.Context) (map[string]int, error)
}

// Broadcaster receives a snapshot after every state change. Implemented by
// the websocket hub; nil-safe (no broadcaster, no push).
type Broadcaster interface {
	BroadcastGameState(Snapshot)
}

// Snapshot is the read-only view handed to the UI layer.
type Snapshot struct {
	Active *ActiveGame `json:"active"`
	// GameActive requires an unfinished game with a non-empty round list; an
	// ActiveGame that somehow has zero rounds does not count.
	GameActive     bool   `json:"gameActive"`
	CurrentRound   int    `json:"currentRound"`
	Cumulative     Record `json:"cumulative"`
	RoundRemaining int    `json:"roundRemaining"`
	RoundTimedOut  bool   `json:"roundTimedOut"`
}

// StartOptions carries the per-game settings chosen at start.
type StartOptions struct {
	Timed bool
	TeamW int
	TeamL int
}

// NavigateOptions carries the collaborator-supplied inputs of a round
// transition.
type NavigateOptions struct {
	TeamW    int
	TeamL    int
	TimedOut bool
}

// Session owns the single active game plus the history/best-score ledger.
// Public operations are safe for concurrent use; in practice they arrive
// serially from a single client.
type Session struct {
	mu    sync.Mutex
	modes ModeSource
	store Store
	bcast Broadcaster
	now   func() time.Time

	active  *ActiveGame
	history []SavedGame
	best    map[string]int
	timer   roundTimer
}

// NewSession constructs a Session and reloads any persisted state, so an
// in-progress game survives a process restart.
func NewSession(ctx context.Context, modes ModeSource, st Store) (*Session, error) {
	s := &Session{modes: modes, store: st, now: time.Now}

	active, err := st.LoadActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active game: %w", err)
	}
	history, err := st.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	best, err := st.LoadBestScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load best scores: %w", err)
	}
	if best == nil {
		best = make(map[string]int)
	}
	s.active = active
	s.history = history
	s.best = best
	if active != nil && !active.Finished {
		// The round clock restarts on resume; the latch does not survive.
		s.timer.reset(s.now())
	}
	return s, nil
}

// SetBroadcaster installs the snapshot push target. Call before serving.
func (s *Session) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bcast = b
}

// StartGame creates a new active game on startingTeam with round 0
// pre-seeded: every target on the starting roster is credited immediately and
// enters the seen set. An existing active game is overwritten; routing
// through Abandon/Resume first is the UI's responsibility.
func (s *Session) StartGame(ctx context.Context, mode GameMode, startingTeam TeamSeason, targets []Target, opts StartOptions) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	seen := make([]string, 0, len(targets))
	points := 0
	for _, t := range targets {
		seen = append(seen, t.PlayerID)
		points += t.Points
	}

	round0 := Round{
		TeamID:       startingTeam.TeamID,
		TeamName:     startingTeam.TeamName,
		YearID:       startingTeam.YearID,
		TargetsFound: targets,
		PointsEarned: points,
		TeamW:        opts.TeamW,
		TeamL:        opts.TeamL,
	}

	s.active = &ActiveGame{
		ID:          fmt.Sprintf("%s-%d", mode.ID, now.UnixMilli()),
		ModeID:      mode.ID,
		StartedAt:   now.UnixMilli(),
		Rounds:      []Round{round0},
		SeenTargets: seen,
		TotalPoints: points,
		Timed:       opts.Timed,
	}
	s.timer.reset(now)

	s.persistActiveLocked(ctx)
	return s.finishMutationLocked()
}

// PickPlayer records the player chosen to leave the current round. Guarded
// no-op without an unfinished active game. If the round quota has already
// been met, the pick finishes the game without a further team visit.
func (s *Session) PickPlayer(ctx context.Context, playerID, playerName string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.Finished {
		return s.snapshotLocked()
	}

	idx := len(s.active.Rounds) - 1
	s.active.Rounds[idx].PickedPlayerID = &playerID
	s.active.Rounds[idx].PickedPlayerName = &playerName

	if s.quotaMetLocked() {
		s.active.Finished = true
	}

	s.persistActiveLocked(ctx)
	return s.finishMutationLocked()
}

// NavigateToTeam appends a round for the visited team-season.
//
// Scoring rules:
//   - Timed-out rounds earn 0 and leave the seen set untouched, so their
//     targets stay collectible on a later visit.
//   - Otherwise only targets absent from the seen set earn points; the seen
//     set grows by exactly those targets.
//   - The round stores the full target list either way, for display.
//
// The round clock rebaselines on every transition, and the game auto-finishes
// once the mode's round quota is met.
func (s *Session) NavigateToTeam(ctx context.Context, team TeamSeason, targets []Target, opts NavigateOptions) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.Finished {
		return s.snapshotLocked()
	}

	mode, haveMode := s.modes.Mode(s.active.ModeID)
	uniqueOnly := !haveMode || mode.Scoring.UniqueOnly

	points := 0
	if !opts.TimedOut {
		seen := make(map[string]struct{}, len(s.active.SeenTargets))
		for _, id := range s.active.SeenTargets {
			seen[id] = struct{}{}
		}
		for _, t := range targets {
			if _, ok := seen[t.PlayerID]; ok {
				if uniqueOnly {
					continue
				}
				points += t.Points
				continue
			}
			points += t.Points
			s.active.SeenTargets = append(s.active.SeenTargets, t.PlayerID)
		}
	}

	s.active.Rounds = append(s.active.Rounds, Round{
		TeamID:       team.TeamID,
		TeamName:     team.TeamName,
		YearID:       team.YearID,
		TargetsFound: targets,
		PointsEarned: points,
		TeamW:        opts.TeamW,
		TeamL:        opts.TeamL,
		TimedOut:     opts.TimedOut,
	})
	s.active.TotalPoints += points
	s.timer.reset(s.now())

	if s.quotaMetLocked() {
		s.active.Finished = true
	}

	s.persistActiveLocked(ctx)
	return s.finishMutationLocked()
}

// EndGame marks the game finished (idempotent), evaluates the mode's game
// bonus, archives a SavedGame at the head of history, raises the mode's best
// score when strictly beaten, and clears the active game. Returns the
// archived game, or nil if no game was active.
func (s *Session) EndGame(ctx context.Context) *SavedGame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	s.active.Finished = true

	bonus := 0
	if mode, ok := s.modes.Mode(s.active.ModeID); ok {
		bonus = s.evaluateBonusLocked(mode)
	} else {
		log.Warn().Str("modeId", s.active.ModeID).Msg("end game: unknown mode, skipping bonus")
	}
	s.active.BonusPoints = bonus
	finalTotal := s.active.TotalPoints + bonus

	saved := SavedGame{
		ID:          s.active.ID,
		ModeID:      s.active.ModeID,
		StartedAt:   s.active.StartedAt,
		FinishedAt:  s.now().UnixMilli(),
		TotalPoints: finalTotal,
		Rounds:      s.active.Rounds,
		Timed:       s.active.Timed,
		BonusPoints: bonus,
	}

	// Most-recent-first history; ties do not raise the best score.
	s.history = append([]SavedGame{saved}, s.history...)
	if finalTotal > s.best[saved.ModeID] {
		s.best[saved.ModeID] = finalTotal
	}

	s.active = nil
	s.persistActiveLocked(ctx)
	if err := s.store.SaveHistory(ctx, s.history); err != nil {
		log.Warn().Err(err).Msg("persist history")
	}
	if err := s.store.SaveBestScores(ctx, s.best); err != nil {
		log.Warn().Err(err).Msg("persist best scores")
	}
	s.finishMutationLocked()
	return &saved
}

// AbandonGame discards the active game permanently: no history write, no
// bonus evaluation.
func (s *Session) AbandonGame(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	s.persistActiveLocked(ctx)
	s.finishMutationLocked()
}

// MarkRoundTimedOut latches the round-timeout flag for the current round of a
// timed game. Idempotent; consumed by the next NavigateToTeam.
func (s *Session) MarkRoundTimedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && !s.active.Finished && s.active.Timed {
		s.timer.markExpired()
	}
}

// RoundTimedOut reports (and, on clock expiry, latches) the current round's
// timeout state.
func (s *Session) RoundTimedOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.Finished || !s.active.Timed {
		return false
	}
	return s.timer.tick(s.now())
}

// Snapshot returns the current read-only view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// GameActive reports whether a begun, unfinished game exists.
func (s *Session) GameActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameActiveLocked()
}

// CurrentRoundIndex returns the index of the last round, or -1 with no game.
func (s *Session) CurrentRoundIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return -1
	}
	return len(s.active.Rounds) - 1
}

// CumulativeRecord sums team win/loss records across all rounds visited.
func (s *Session) CumulativeRecord() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cumulativeLocked()
}

// History returns the archived games, most recent first.
func (s *Session) History() []SavedGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SavedGame, len(s.history))
	copy(out, s.history)
	return out
}

// BestScores returns a copy of the per-mode best-score map.
func (s *Session) BestScores() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.best))
	for k, v := range s.best {
		out[k] = v
	}
	return out
}

// BestScore returns the recorded best for a mode, if any.
func (s *Session) BestScore(modeID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.best[modeID]
	return v, ok
}

// ----------------------------- internals -----------------------------------

// quotaMetLocked is the single auto-finish rule: the freebie round 0 plus the
// mode's configured round count have all been visited.
func (s *Session) quotaMetLocked() bool {
	mode, ok := s.modes.Mode(s.active.ModeID)
	if !ok {
		return false
	}
	return len(s.active.Rounds) > mode.Rounds
}

// evaluateBonusLocked computes the mode's single optional game bonus.
func (s *Session) evaluateBonusLocked(mode GameMode) int {
	if mode.Bonuses == nil || mode.Bonuses.GameBonus == nil {
		return 0
	}
	gb := mode.Bonuses.GameBonus
	if gb.Condition == BonusCumulativeLosingRecord {
		rec := s.cumulativeLocked()
		if rec.L > rec.W {
			return gb.Points
		}
	}
	return 0
}

func (s *Session) cumulativeLocked() Record {
	var rec Record
	if s.active == nil {
		return rec
	}
	for _, r := range s.active.Rounds {
		rec.W += r.TeamW
		rec.L += r.TeamL
	}
	return rec
}

func (s *Session) gameActiveLocked() bool {
	return s.active != nil && !s.active.Finished && len(s.active.Rounds) > 0
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Active:       s.active.clone(),
		GameActive:   s.gameActiveLocked(),
		CurrentRound: -1,
		Cumulative:   s.cumulativeLocked(),
	}
	if s.active != nil {
		snap.CurrentRound = len(s.active.Rounds) - 1
	}
	if s.gameActiveLocked() && s.active.Timed {
		now := s.now()
		snap.RoundRemaining = s.timer.remaining(now)
		snap.RoundTimedOut = s.timer.tick(now)
	}
	return snap
}

// persistActiveLocked saves the active game best-effort; the in-memory state
// stays authoritative if storage lags.
func (s *Session) persistActiveLocked(ctx context.Context) {
	if err := s.store.SaveActive(ctx, s.active); err != nil {
		log.Warn().Err(err).Msg("persist active game")
	}
}

// finishMutationLocked pushes a snapshot to the broadcaster and returns it.
func (s *Session) finishMutationLocked() Snapshot {
	snap := s.snapshotLocked()
	if s.bcast != nil {
		s.bcast.BroadcastGameState(snap)
	}
	return snap
}

// clone returns a detached copy safe to hand outside the lock. Targets are
// immutable once computed, so sharing the inner slices' backing arrays after
// copy is fine; the round and seen slices themselves are duplicated.
func (g *ActiveGame) clone() *ActiveGame {
	if g == nil {
		return nil
	}
	out := *g
	out.Rounds = make([]Round, len(g.Rounds))
	copy(out.Rounds, g.Rounds)
	out.SeenTargets = make([]string, len(g.SeenTargets))
	copy(out.SeenTargets, g.SeenTargets)
	return &out
}
