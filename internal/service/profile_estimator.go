package service

import "auto-bargain/internal/domain"

// skilledLabels are the tactics that mark the passenger as someone who knows
// how to bargain.
var skilledLabels = map[domain.StrategyLabel]struct{}{
	domain.StrategyLogical:  {},
	domain.StrategyWalkAway: {},
	domain.StrategyCultural: {},
}

// UpdateProfile folds one utterance analysis into the running opponent
// estimate and returns the new value; the caller replaces its stored copy.
//
// The awareness/skill/politeness accumulators have no upper bound on purpose
// (see the field docs on OpponentProfile).
func UpdateProfile(p domain.OpponentProfile, a domain.UtteranceAnalysis, turn int) domain.OpponentProfile {
	p.CulturalAwareness += float64(2*len(a.Markers.LocalTerms) + len(a.Markers.PlaceRefs) + len(a.Markers.RespectTerms))

	if _, ok := skilledLabels[a.Strategy]; ok {
		p.NegotiationSkill++
	}

	switch a.Respect {
	case domain.RespectHigh:
		p.Politeness++
	case domain.RespectLow:
		p.Politeness--
	}

	if a.Urgency == domain.UrgencyHigh {
		p.Patience--
	}
	if turn > 5 {
		p.Patience -= 0.5
	}

	// One-way latch: local credentials never expire within a session.
	if len(a.Markers.PlaceRefs) > 0 || len(a.Markers.LocalTerms) > 1 {
		p.IsLocal = true
	}

	return p
}
