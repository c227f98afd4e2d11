// internal/game/overrides.go
//
// Scoring override resolution. A mode may declare an ordered list of
// threshold rules that replace a target's raw point value (e.g. flatten all
// multi-selection All-Stars to a fixed score). Resolution is pure and
// deterministic: the first matching rule wins, an empty rule list passes the
// raw value through.

package game

// ResolveOverrides applies the first matching override rule to rawPoints.
// Rules are checked in declared order; no match leaves the value unchanged.
func ResolveOverrides(rawPoints int, overrides []ScoringOverride) int {
	for _, rule := range overrides {
		switch rule.When {
		case OverrideGTE:
			if rawPoints >= rule.Threshold {
				return rule.Points
			}
		case OverrideEQ:
			if rawPoints == rule.Threshold {
				return rule.Points
			}
		case OverrideLTE:
			if rawPoints <= rule.Threshold {
				return rule.Points
			}
		}
	}
	return rawPoints
}
