package domain

// OpponentProfile is the driver's running estimate of the passenger, built up
// turn over turn from utterance analyses.
//
// CulturalAwareness, NegotiationSkill and Politeness have no upper bound on
// purpose: a long, well-played conversation keeps escalating the discounts
// they drive. Do not clamp them.
type OpponentProfile struct {
	// IsLocal latches to true once the passenger shows local credentials and
	// never reverts within a session.
	IsLocal           bool    `json:"is_local"`
	CulturalAwareness float64 `json:"cultural_awareness"`
	NegotiationSkill  int     `json:"negotiation_skill"`
	Politeness        int     `json:"politeness"`
	// Patience starts at 5 on a 0-10 scale and decays under urgency and long
	// conversations. It is tracked for observability only; pricing and
	// response selection deliberately do not read it.
	Patience float64 `json:"patience"`
}

// NewOpponentProfile returns the estimate a driver starts every session with.
func NewOpponentProfile() OpponentProfile {
	return OpponentProfile{Patience: 5}
}
