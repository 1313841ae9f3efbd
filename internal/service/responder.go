package service

import (
	"fmt"
	"strconv"
	"strings"

	"auto-bargain/internal/domain"
)

// SessionContext is the per-turn snapshot the synthesizer and prompt builder
// work from.
type SessionContext struct {
	CurrentPrice int
	FairPrice    int
	Round        int
	MaxRounds    int
	Mood         domain.Mood
	Stance       domain.Stance
}

// DriverReply is text produced by an external responder.
type DriverReply struct {
	Text   string
	Source string
}

// SourceFallback marks an external reply that must be ignored in favor of the
// local template pool.
const SourceFallback = "fallback"

// recentCategoryWindow caps the anti-repetition FIFO.
const recentCategoryWindow = 3

// ResponseSynthesizer produces the driver's reply for one turn. Resolution
// order: direct pattern rules, then a usable external reply, then the
// conditioned template pool.
type ResponseSynthesizer struct {
	phrases  domain.PhraseBank
	location domain.LocationConfig
	rng      Rand
}

func NewResponseSynthesizer(phrases domain.PhraseBank, location domain.LocationConfig, rng Rand) *ResponseSynthesizer {
	return &ResponseSynthesizer{phrases: phrases, location: location, rng: rng}
}

// Synthesize returns the reply text plus its coarse category for the
// caller's anti-repetition bookkeeping. recent is the category FIFO of the
// last few replies.
func (s *ResponseSynthesizer) Synthesize(
	a domain.UtteranceAnalysis,
	ctx SessionContext,
	external *DriverReply,
	recent []string,
) (string, string) {
	// Literal pattern rules always win; a usable external reply pre-empts
	// the template pool for everything else.
	var text string
	if direct := s.directReply(a, ctx); direct != "" {
		text = direct
	} else if external != nil && strings.TrimSpace(external.Text) != "" && external.Source != SourceFallback {
		text = s.enhanceExternal(external.Text)
	} else {
		text = s.poolReply(a, ctx, recent)
	}
	text = s.personalityTouch(text, ctx.Mood)
	return text, CategorizeReply(text)
}

// directRule pairs a predicate with a reply builder. Rules are evaluated in
// slice order; the first match wins and pre-empts the template pool.
type directRule struct {
	name  string
	match func(in directInput) bool
	build func(in directInput) string
}

type directInput struct {
	lower string
	a     domain.UtteranceAnalysis
	ctx   SessionContext
}

func mentionsAny(terms ...string) func(directInput) bool {
	return func(in directInput) bool { return containsAny(in.lower, terms) }
}

var directRules = []directRule{
	{
		name: "counter_offer",
		match: func(in directInput) bool {
			return in.a.PriceExpectation != nil && *in.a.PriceExpectation < in.ctx.CurrentPrice
		},
		build: func(in directInput) string {
			offer := *in.a.PriceExpectation
			gap := in.ctx.CurrentPrice - offer
			if float64(gap) > float64(in.ctx.FairPrice)*0.3 {
				return fmt.Sprintf("₹%d? Ayyo sir, that's too low! Even petrol costs more than that. ₹%d is minimum I can do.",
					offer, maxInt(in.ctx.FairPrice+10, in.ctx.CurrentPrice-20))
			}
			return fmt.Sprintf("₹%d is close... but I need at least ₹%d to make it worthwhile.",
				offer, maxInt(in.ctx.FairPrice, in.ctx.CurrentPrice-15))
		},
	},
	{
		name:  "fuel_cost",
		match: mentionsAny("petrol", "fuel"),
		build: func(in directInput) string {
			return fmt.Sprintf("Exactly sir! You understand - petrol is ₹95 per liter now! That's why ₹%d is necessary for this distance.", in.ctx.CurrentPrice)
		},
	},
	{
		name:  "traffic",
		match: mentionsAny("traffic"),
		build: func(in directInput) string {
			return fmt.Sprintf("Yes yes, traffic is terrible! More time means more petrol burning. ₹%d covers the traffic delay also.", in.ctx.CurrentPrice)
		},
	},
	{
		name:  "rain",
		match: mentionsAny("raining", "rain"),
		build: func(in directInput) string {
			return fmt.Sprintf("Monsoon time is difficult for driving sir. Extra careful needed. ₹%d includes weather risk also.", in.ctx.CurrentPrice)
		},
	},
	{
		name:  "festival",
		match: mentionsAny("festival", "celebration"),
		build: func(in directInput) string {
			return fmt.Sprintf("During festival time, everyone needs auto! Demand is high, so ₹%d is festival rate sir.", in.ctx.CurrentPrice)
		},
	},
	{
		name:  "family_appeal",
		match: mentionsAny("family", "wife", "children"),
		build: func(in directInput) string {
			return fmt.Sprintf("I understand sir, I also have family to feed. But ₹%d is minimum needed to run household.",
				maxInt(in.ctx.FairPrice, in.ctx.CurrentPrice-10))
		},
	},
	{
		name:  "work_run",
		match: mentionsAny("job", "work", "office"),
		build: func(in directInput) string {
			return fmt.Sprintf("Work is important sir! Don't be late for boss. ₹%d will get you there quickly and safely.", in.ctx.CurrentPrice)
		},
	},
	{
		name:  "emergency",
		match: mentionsAny("hospital", "emergency", "urgent"),
		build: func(in directInput) string {
			return fmt.Sprintf("Emergency? Then we must go fast! ₹%d and I'll take quickest route.",
				maxInt(in.ctx.FairPrice, in.ctx.CurrentPrice-5))
		},
	},
	{
		name:  "compliment",
		match: mentionsAny("nice auto", "clean", "good driver"),
		build: func(in directInput) string {
			return fmt.Sprintf("Thank you sir! I maintain my auto very well. For appreciative customer like you, ₹%d special rate!",
				maxInt(in.ctx.FairPrice, in.ctx.CurrentPrice-12))
		},
	},
	{
		name: "driver_tenure",
		match: func(in directInput) bool {
			return strings.Contains(in.lower, "how long") && strings.Contains(in.lower, "driving")
		},
		build: func(in directInput) string {
			return fmt.Sprintf("I'm driving auto for 15 years sir! Know all routes in Kerala. Experience costs ₹%d - you get safe journey guaranteed!", in.ctx.CurrentPrice)
		},
	},
	{
		name:  "driver_origin",
		match: mentionsAny("from where", "which place"),
		build: func(in directInput) string {
			return fmt.Sprintf("I'm from Ernakulam itself sir, born and brought up here. Local driver means no cheating - ₹%d is honest rate.", in.ctx.CurrentPrice)
		},
	},
}

func (s *ResponseSynthesizer) directReply(a domain.UtteranceAnalysis, ctx SessionContext) string {
	in := directInput{lower: strings.ToLower(a.RawText), a: a, ctx: ctx}
	for _, rule := range directRules {
		if rule.match(in) {
			return rule.build(in)
		}
	}
	return ""
}

func (s *ResponseSynthesizer) poolReply(a domain.UtteranceAnalysis, ctx SessionContext, recent []string) string {
	pool := s.buildPool(a, ctx)

	filtered := pool[:0:0]
	for _, candidate := range pool {
		if !containsString(recent, CategorizeReply(candidate)) {
			filtered = append(filtered, candidate)
		}
	}
	// If filtering starves the pool, repetition beats silence.
	if len(filtered) == 0 {
		filtered = pool
	}

	return s.fillPlaceholders(pickString(s.rng, filtered), ctx)
}

func (s *ResponseSynthesizer) buildPool(a domain.UtteranceAnalysis, ctx SessionContext) []string {
	var pool []string

	switch a.Strategy {
	case domain.StrategyWalkAway:
		if ctx.Stance == domain.StancePanic {
			pool = append(pool, s.phrases.WalkAwayPanic...)
		} else {
			pool = append(pool, s.phrases.WalkAwayFirm...)
		}
	case domain.StrategyCultural:
		if strings.Contains(s.location.Name, "Uncle") {
			pool = append(pool, s.phrases.CulturalUncle...)
		} else {
			pool = append(pool, s.phrases.CulturalGeneric...)
		}
	case domain.StrategyLogical:
		pool = append(pool, s.phrases.Logical...)
	case domain.StrategyAggressive:
		if float64(s.location.Personality.Patience) < 5 {
			pool = append(pool, s.phrases.AggressiveImpatient...)
		} else {
			pool = append(pool, s.phrases.AggressivePatient...)
		}
	default:
		pool = append(pool, s.phrases.General...)
	}

	switch ctx.Mood {
	case domain.MoodHappy:
		pool = append(pool, s.phrases.MoodHappy...)
	case domain.MoodAnnoyed:
		pool = append(pool, s.phrases.MoodAnnoyed...)
	}

	return pool
}

func (s *ResponseSynthesizer) fillPlaceholders(text string, ctx SessionContext) string {
	r := strings.NewReplacer(
		"{price}", strconv.Itoa(ctx.CurrentPrice),
		"{location}", s.location.Name,
		"{round}", strconv.Itoa(ctx.Round),
	)
	return r.Replace(text)
}

// enhanceExternal takes externally generated text verbatim and appends at
// most one location suffix and one personality aside.
func (s *ResponseSynthesizer) enhanceExternal(text string) string {
	if strings.Contains(s.location.Name, "Airport") && s.rng.Float64() > 0.7 {
		text += " Airport has special charges, you know."
	} else if strings.Contains(s.location.Name, "Uncle") && s.rng.Float64() > 0.6 {
		text += " For good family, I always give best rate!"
	}
	if s.location.Personality.Humor > 0.7 && len(s.phrases.Jokes) > 0 && s.rng.Float64() > 0.8 {
		text += pickString(s.rng, s.phrases.Jokes)
	}
	return text
}

func (s *ResponseSynthesizer) personalityTouch(text string, mood domain.Mood) string {
	if emojis, ok := s.phrases.MoodEmojis[mood]; ok && len(emojis) > 0 && s.rng.Float64() > 0.6 {
		text = pickString(s.rng, emojis) + " " + text
	}
	if len(s.phrases.Interjections) > 0 && s.rng.Float64() > 0.8 {
		text = pickString(s.rng, s.phrases.Interjections) + " " + text
	}
	return text
}

// CategorizeReply buckets a reply by literal substring checks, mirroring how
// the pool templates are phrased.
func CategorizeReply(text string) string {
	switch {
	case strings.Contains(text, "Don't go") || strings.Contains(text, "Wait"):
		return "panic"
	case strings.Contains(text, "family") || strings.Contains(text, "local"):
		return "cultural"
	case strings.Contains(text, "meter") || strings.Contains(text, "distance"):
		return "logical"
	case strings.Contains(text, "😊") || strings.Contains(text, "good day"):
		return "happy"
	case strings.Contains(text, "😤") || strings.Contains(text, "waste time"):
		return "annoyed"
	default:
		return "general"
	}
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
