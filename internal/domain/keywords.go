package domain

// StrategyKeywords binds one strategy label to its trigger keywords. Order in
// the containing slice is the classification priority.
type StrategyKeywords struct {
	Label    StrategyLabel
	Keywords []string
}

// KeywordTable holds every keyword list the signal extractor matches against.
// All matching is case-insensitive substring matching.
type KeywordTable struct {
	Positive []string
	Negative []string

	// Strategies are checked in slice order; the first label with a matching
	// keyword wins.
	Strategies []StrategyKeywords

	LocalTerms   []string
	PlaceRefs    []string
	RespectTerms []string

	Urgent  []string
	Relaxed []string

	Respectful []string
	Rude       []string
}

// Validate makes sure the classifier has something to match against.
func (k KeywordTable) Validate() error {
	if len(k.Strategies) == 0 {
		return &ConfigurationError{Field: "strategies", Reason: "keyword table has no strategy categories"}
	}
	for _, s := range k.Strategies {
		if len(s.Keywords) == 0 {
			return &ConfigurationError{Field: string(s.Label), Reason: "strategy category has no keywords"}
		}
	}
	return nil
}

// DefaultKeywords returns the built-in classifier vocabulary.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		Positive: []string{"good", "nice", "fair", "reasonable", "thank", "please", "appreciate", "understand", "respect"},
		Negative: []string{"bad", "terrible", "ridiculous", "stupid", "crazy", "unfair", "cheating", "robbery"},

		Strategies: []StrategyKeywords{
			{Label: StrategyWalkAway, Keywords: []string{"walk", "leave", "find another", "other auto", "bus", "uber", "ola"}},
			{Label: StrategyCultural, Keywords: []string{"uncle", "chettan", "setta", "local", "malayali", "kerala", "family"}},
			{Label: StrategyAggressive, Keywords: []string{"must", "should", "have to", "demand", "insist", "final offer"}},
			{Label: StrategyEmotional, Keywords: []string{"poor", "student", "help", "please", "need", "struggling"}},
			{Label: StrategyLogical, Keywords: []string{"meter", "distance", "time", "petrol", "rate", "standard"}},
			{Label: StrategyFlattery, Keywords: []string{"good driver", "nice person", "honest", "trustworthy", "experienced"}},
		},

		LocalTerms:   []string{"uncle", "chettan", "setta", "namaskaram", "vanakkam", "nanni", "ayyye"},
		PlaceRefs:    []string{"kerala", "kochi", "ernakulam", "malayali", "local"},
		RespectTerms: []string{"sir", "madam", "ji"},

		Urgent:  []string{"hurry", "quick", "fast", "urgent", "late", "rush", "immediately"},
		Relaxed: []string{"no hurry", "take time", "whenever", "no rush"},

		Respectful: []string{"please", "thank you", "sir", "uncle", "excuse me", "sorry"},
		Rude:       []string{"stupid", "idiot", "cheat", "liar", "ridiculous"},
	}
}
