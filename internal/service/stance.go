package service

import "auto-bargain/internal/domain"

// stanceCooldownTurns is the minimum number of turns between stance changes.
const stanceCooldownTurns = 2

// StanceMachine tracks the driver's negotiating posture for one session.
type StanceMachine struct {
	current    domain.Stance
	lastChange int
}

// NewStanceMachine draws the initial stance from difficulty-biased weights:
// nightmare drivers lean aggressive, tutorial drivers lean friendly, and
// moderate/testing always keep nonzero weight.
func NewStanceMachine(difficulty string, rng Rand) *StanceMachine {
	stances := []domain.Stance{
		domain.StanceAggressive,
		domain.StanceModerate,
		domain.StanceFriendly,
		domain.StanceTesting,
	}
	weights := []float64{0.1, 0.4, 0.2, 0.1}
	switch difficulty {
	case "nightmare":
		weights[0] = 0.4
	case "tutorial":
		weights[2] = 0.4
	}
	return &StanceMachine{current: stances[weightedPick(rng, weights)]}
}

// Current returns the active stance.
func (m *StanceMachine) Current() domain.Stance { return m.current }

// Advance re-evaluates the stance for the given turn. Transitions only fire
// once the cooldown has elapsed, in fixed priority order: a walk-away threat
// forces panic, sustained politeness softens aggression, and a tester commits
// after round 4. Everything else is sticky.
func (m *StanceMachine) Advance(a domain.UtteranceAnalysis, p domain.OpponentProfile, round int, rng Rand) domain.Stance {
	if round-m.lastChange < stanceCooldownTurns {
		return m.current
	}
	switch {
	case a.Strategy == domain.StrategyWalkAway && m.current != domain.StancePanic:
		m.set(domain.StancePanic, round)
	case p.Politeness > 3 && m.current == domain.StanceAggressive:
		m.set(domain.StanceFriendly, round)
	case round > 4 && m.current == domain.StanceTesting:
		next := domain.StanceModerate
		if rng.Float64() > 0.5 {
			next = domain.StanceAggressive
		}
		m.set(next, round)
	}
	return m.current
}

func (m *StanceMachine) set(s domain.Stance, round int) {
	m.current = s
	m.lastChange = round
}
