package service

import (
	"regexp"
	"strconv"
	"strings"

	"auto-bargain/internal/domain"
)

// SignalExtractor turns one raw utterance into a structured analysis. It is
// stateless: identical input always yields identical output.
type SignalExtractor struct {
	keywords domain.KeywordTable
}

func NewSignalExtractor(keywords domain.KeywordTable) *SignalExtractor {
	return &SignalExtractor{keywords: keywords}
}

var priceTokenRe = regexp.MustCompile(`(?:₹|rs\.?\s*)?(\d+)`)

// Extract analyzes the utterance. It never fails; text with no matches comes
// back with neutral defaults.
func (e *SignalExtractor) Extract(raw string) domain.UtteranceAnalysis {
	lower := strings.ToLower(raw)
	return domain.UtteranceAnalysis{
		RawText:          raw,
		Sentiment:        e.sentiment(lower),
		Strategy:         e.strategy(lower),
		Markers:          e.markers(lower),
		PriceExpectation: e.priceExpectation(lower),
		Urgency:          e.urgency(lower),
		Respect:          e.respect(lower),
	}
}

func (e *SignalExtractor) sentiment(lower string) domain.Sentiment {
	var pos, neg int
	for _, word := range strings.Fields(lower) {
		if wordMatchesAny(word, e.keywords.Positive) {
			pos++
		}
		if wordMatchesAny(word, e.keywords.Negative) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return domain.SentimentPositive
	case neg > pos:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// strategy returns the first category in table order with a keyword hit.
func (e *SignalExtractor) strategy(lower string) domain.StrategyLabel {
	for _, cat := range e.keywords.Strategies {
		if containsAny(lower, cat.Keywords) {
			return cat.Label
		}
	}
	return domain.StrategyNone
}

func (e *SignalExtractor) markers(lower string) domain.CulturalMarkers {
	return domain.CulturalMarkers{
		LocalTerms:   matchingKeywords(lower, e.keywords.LocalTerms),
		PlaceRefs:    matchingKeywords(lower, e.keywords.PlaceRefs),
		RespectTerms: matchingKeywords(lower, e.keywords.RespectTerms),
	}
}

// priceExpectation takes the last numeric token in reading order, with an
// optional currency marker in front.
func (e *SignalExtractor) priceExpectation(lower string) *int {
	matches := priceTokenRe.FindAllStringSubmatch(lower, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if v, err := strconv.Atoi(matches[i][1]); err == nil {
			return &v
		}
	}
	return nil
}

func (e *SignalExtractor) urgency(lower string) domain.Urgency {
	// Relaxed phrases win over their urgent substrings ("no hurry" vs "hurry").
	if containsAny(lower, e.keywords.Relaxed) {
		return domain.UrgencyLow
	}
	if containsAny(lower, e.keywords.Urgent) {
		return domain.UrgencyHigh
	}
	return domain.UrgencyMedium
}

func (e *SignalExtractor) respect(lower string) domain.RespectLevel {
	score := 0
	for _, marker := range e.keywords.Respectful {
		if strings.Contains(lower, marker) {
			score++
		}
	}
	for _, marker := range e.keywords.Rude {
		if strings.Contains(lower, marker) {
			score -= 2
		}
	}
	switch {
	case score >= 2:
		return domain.RespectHigh
	case score <= -1:
		return domain.RespectLow
	default:
		return domain.RespectMedium
	}
}

func containsAny(s string, list []string) bool {
	for _, x := range list {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}

func matchingKeywords(s string, list []string) []string {
	var out []string
	for _, x := range list {
		if strings.Contains(s, x) {
			out = append(out, x)
		}
	}
	return out
}

func wordMatchesAny(word string, list []string) bool {
	for _, x := range list {
		if strings.Contains(word, x) {
			return true
		}
	}
	return false
}
