package domain

// Sentiment is the coarse affect read from one utterance.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// StrategyLabel is the negotiation tactic detected in one utterance.
type StrategyLabel string

const (
	StrategyWalkAway   StrategyLabel = "walk_away"
	StrategyCultural   StrategyLabel = "cultural"
	StrategyAggressive StrategyLabel = "aggressive"
	StrategyEmotional  StrategyLabel = "emotional"
	StrategyLogical    StrategyLabel = "logical"
	StrategyFlattery   StrategyLabel = "flattery"
	StrategyNone       StrategyLabel = "neutral"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

type RespectLevel string

const (
	RespectHigh   RespectLevel = "high"
	RespectMedium RespectLevel = "medium"
	RespectLow    RespectLevel = "low"
)

// CulturalMarkers lists the literal markers found in an utterance, grouped by
// what they signal about the passenger.
type CulturalMarkers struct {
	LocalTerms   []string `json:"local_terms"`  // Malayalam words and honorifics
	PlaceRefs    []string `json:"place_refs"`   // local place/identity references
	RespectTerms []string `json:"respect_terms"`
}

// UtteranceAnalysis is the structured read of a single passenger utterance.
// It is a pure function of the raw text; it never carries session state.
type UtteranceAnalysis struct {
	RawText          string          `json:"raw_text"`
	Sentiment        Sentiment       `json:"sentiment"`
	Strategy         StrategyLabel   `json:"strategy"`
	Markers          CulturalMarkers `json:"markers"`
	PriceExpectation *int            `json:"price_expectation,omitempty"`
	Urgency          Urgency         `json:"urgency"`
	Respect          RespectLevel    `json:"respect"`
}
