package service

import (
	"math"

	"auto-bargain/internal/domain"
)

// Adjustment bounds in rupees. Every computed discount lands in this range
// before the session floors the price at the fair rate.
const (
	minAdjustment = 3
	maxAdjustment = 25
)

// ComputeAdjustment maps one analyzed utterance to the discount the driver
// concedes this turn. Pure except for the jitter drawn from rng.
func ComputeAdjustment(
	a domain.UtteranceAnalysis,
	p domain.OpponentProfile,
	stance domain.Stance,
	currentPrice, round int,
	loc domain.LocationConfig,
	rng Rand,
) int {
	base := baseAdjustment(a.Strategy, p, loc)

	switch a.Sentiment {
	case domain.SentimentPositive:
		base += 3
	case domain.SentimentNegative:
		base -= 2
	}

	base += p.CulturalAwareness * 1.5

	// A counter-offer within 30% of the asking price signals serious
	// negotiation. Lowballs get nothing here; the direct-reply rules handle
	// the pushback.
	if a.PriceExpectation != nil {
		gap := currentPrice - *a.PriceExpectation
		if gap > 0 && float64(gap) < float64(currentPrice)*0.3 {
			base += 5
		}
	}

	base *= math.Min(1.5, 1+float64(round)*0.1)

	switch stance {
	case domain.StancePanic:
		base *= 1.5
	case domain.StanceFriendly:
		base *= 1.2
	case domain.StanceAggressive:
		base *= 0.7
	}

	base *= 0.8 + rng.Float64()*0.4

	adj := int(math.Round(base))
	if adj < minAdjustment {
		adj = minAdjustment
	}
	if adj > maxAdjustment {
		adj = maxAdjustment
	}
	return adj
}

func baseAdjustment(label domain.StrategyLabel, p domain.OpponentProfile, loc domain.LocationConfig) float64 {
	pers := loc.Personality
	switch label {
	case domain.StrategyWalkAway:
		if loc.Stubbornness > 0.7 {
			return 8
		}
		return 15
	case domain.StrategyCultural:
		return 10 + pers.LocalKnowledge*8
	case domain.StrategyLogical:
		return 8 + float64(p.NegotiationSkill)*2
	case domain.StrategyEmotional:
		return pers.TouristFriendly * 12
	case domain.StrategyAggressive:
		return math.Max(2, 10-loc.Stubbornness*10)
	case domain.StrategyFlattery:
		return 6 + pers.Humor*5
	default:
		return 5
	}
}
