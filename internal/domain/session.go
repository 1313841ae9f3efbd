package domain

import "time"

// Stance is the driver's own negotiating posture across the session.
type Stance string

const (
	StanceAggressive Stance = "aggressive"
	StanceModerate   Stance = "moderate"
	StanceFriendly   Stance = "friendly"
	StanceTesting    Stance = "testing"
	StancePanic      Stance = "panic"
)

// Mood is the driver's 4-level affect scale, ordered worst to best.
type Mood string

const (
	MoodAngry   Mood = "angry"
	MoodAnnoyed Mood = "annoyed"
	MoodNeutral Mood = "neutral"
	MoodHappy   Mood = "happy"
)

var moodScale = []Mood{MoodAngry, MoodAnnoyed, MoodNeutral, MoodHappy}

// Index returns the mood's position on the ordered scale (angry=0, happy=3).
func (m Mood) Index() int {
	for i, v := range moodScale {
		if v == m {
			return i
		}
	}
	return 2 // unknown reads as neutral
}

// Shift moves the mood by delta steps on the scale, clamped at both ends.
// The target position is rounded to the nearest step, so fractional deltas
// only move the needle when they cross the half-step threshold in one turn.
func (m Mood) Shift(delta float64) Mood {
	idx := m.Index()
	step := int(roundHalfUp(float64(idx) + delta))
	if step < 0 {
		step = 0
	}
	if step > len(moodScale)-1 {
		step = len(moodScale) - 1
	}
	return moodScale[step]
}

func roundHalfUp(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return -float64(int(-v + 0.5))
}

// TurnRecord is one entry of the append-only negotiation history.
type TurnRecord struct {
	Turn      int               `json:"turn"`
	Input     string            `json:"input"`
	Analysis  UtteranceAnalysis `json:"analysis"`
	Price     int               `json:"price"`
	Mood      Mood              `json:"mood"`
	Reply     string            `json:"reply"`
	CreatedAt time.Time         `json:"created_at"`
}

// TurnResult is what one accepted utterance produces for the caller.
type TurnResult struct {
	Reply          string `json:"reply"`
	NewPrice       int    `json:"new_price"`
	Mood           Mood   `json:"mood"`
	Round          int    `json:"round"`
	Stance         Stance `json:"stance"`
	DriverThoughts string `json:"driver_thoughts,omitempty"`
	Ended          bool   `json:"ended"`
	Score          *Score `json:"score,omitempty"`
}

// Score is the deterministic end-of-session result breakdown.
type Score struct {
	Total           int    `json:"total"`
	SavingsScore    int    `json:"savings_score"`
	CulturalBonus   int    `json:"cultural_bonus"`
	EfficiencyBonus int    `json:"efficiency_bonus"`
	MoodBonus       int    `json:"mood_bonus"`
	Grade           string `json:"grade"`
	InitialPrice    int    `json:"initial_price"`
	FinalPrice      int    `json:"final_price"`
	Saved           int    `json:"saved"`
	RoundsUsed      int    `json:"rounds_used"`
}
