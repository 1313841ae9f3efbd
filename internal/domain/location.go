package domain

import "math"

// PersonalityConfig tunes how a driver persona negotiates. Patience is a
// 1-10 scale; the remaining traits are 0.0-1.0 factors.
type PersonalityConfig struct {
	Patience        int     `json:"patience"`
	Humor           float64 `json:"humor"`
	LocalKnowledge  float64 `json:"local_knowledge"`
	TouristFriendly float64 `json:"tourist_friendly"`
}

// LocationConfig is one immutable pickup-spot preset. FairPrice is the floor
// the negotiation can never push the asking price below.
type LocationConfig struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Difficulty        string            `json:"difficulty"`
	Description       string            `json:"description"`
	BaseFare          int               `json:"base_fare"`
	FairPrice         int               `json:"fair_price"`
	InitialMultiplier float64           `json:"initial_multiplier"`
	Stubbornness      float64           `json:"stubbornness"`
	Greediness        float64           `json:"greediness"`
	Personality       PersonalityConfig `json:"personality"`
	Greetings         []string          `json:"greetings"`
}

// InitialPrice is the opening asking price for this location.
func (l LocationConfig) InitialPrice() int {
	return int(math.Round(float64(l.FairPrice) * l.InitialMultiplier))
}

// Validate rejects presets that would make pricing unsafe. Fair price and the
// multiplier are load-bearing: with either missing the floor logic degrades
// into nonsense, so a bad preset must fail session creation loudly.
func (l LocationConfig) Validate() error {
	if l.ID == "" || l.Name == "" {
		return &ConfigurationError{Field: "name", Reason: "location id and name are required"}
	}
	if l.FairPrice <= 0 {
		return &ConfigurationError{Field: "fair_price", Reason: "must be positive"}
	}
	if l.InitialMultiplier < 1 {
		return &ConfigurationError{Field: "initial_multiplier", Reason: "must be >= 1"}
	}
	if l.Stubbornness < 0 || l.Stubbornness > 1 {
		return &ConfigurationError{Field: "stubbornness", Reason: "must be in [0,1]"}
	}
	if len(l.Greetings) == 0 {
		return &ConfigurationError{Field: "greetings", Reason: "at least one greeting is required"}
	}
	return nil
}
