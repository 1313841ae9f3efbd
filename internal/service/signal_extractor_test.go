package service

import (
	"reflect"
	"testing"

	"auto-bargain/internal/domain"
)

func newExtractor() *SignalExtractor {
	return NewSignalExtractor(domain.DefaultKeywords())
}

func TestExtractPoliteCulturalUtterance(t *testing.T) {
	a := newExtractor().Extract("Uncle, please give me a good rate")

	if a.Strategy != domain.StrategyCultural {
		t.Fatalf("strategy = %q, want %q", a.Strategy, domain.StrategyCultural)
	}
	if a.Sentiment != domain.SentimentPositive {
		t.Fatalf("sentiment = %q, want positive", a.Sentiment)
	}
	if a.Respect != domain.RespectHigh {
		t.Fatalf("respect = %q, want high", a.Respect)
	}
	if len(a.Markers.LocalTerms) != 1 || a.Markers.LocalTerms[0] != "uncle" {
		t.Fatalf("local terms = %v, want [uncle]", a.Markers.LocalTerms)
	}
	if a.PriceExpectation != nil {
		t.Fatalf("price expectation = %v, want nil", *a.PriceExpectation)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	e := newExtractor()
	in := "Uncle, I'll pay ₹80, this traffic is terrible"
	if !reflect.DeepEqual(e.Extract(in), e.Extract(in)) {
		t.Fatal("identical input produced different analyses")
	}
}

func TestExtractStrategyPriorityOrder(t *testing.T) {
	// Walk-away keywords outrank cultural ones even when both are present.
	a := newExtractor().Extract("uncle, lower it or I take the bus")
	if a.Strategy != domain.StrategyWalkAway {
		t.Fatalf("strategy = %q, want walk_away", a.Strategy)
	}
}

func TestExtractPriceExpectation(t *testing.T) {
	e := newExtractor()

	cases := []struct {
		name string
		in   string
		want int
	}{
		{"plain number", "I will pay 100", 100},
		{"currency marker", "how about ₹80", 80},
		{"rs prefix", "rs. 90 is enough", 90},
		{"last number wins", "not 100, I said 75", 75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := e.Extract(tc.in)
			if a.PriceExpectation == nil {
				t.Fatalf("no price extracted from %q", tc.in)
			}
			if *a.PriceExpectation != tc.want {
				t.Fatalf("price = %d, want %d", *a.PriceExpectation, tc.want)
			}
		})
	}

	if a := e.Extract("no numbers here"); a.PriceExpectation != nil {
		t.Fatalf("price = %v, want nil", *a.PriceExpectation)
	}
}

func TestExtractUrgency(t *testing.T) {
	e := newExtractor()

	if a := e.Extract("I'm in a hurry, my train leaves soon"); a.Urgency != domain.UrgencyHigh {
		t.Fatalf("urgency = %q, want high", a.Urgency)
	}
	// Relaxed phrasing must beat the urgent substring it contains.
	if a := e.Extract("no hurry at all, whenever you are ready"); a.Urgency != domain.UrgencyLow {
		t.Fatalf("urgency = %q, want low", a.Urgency)
	}
	if a := e.Extract("hello hello"); a.Urgency != domain.UrgencyMedium {
		t.Fatalf("urgency = %q, want medium", a.Urgency)
	}
}

func TestExtractRudeUtterance(t *testing.T) {
	a := newExtractor().Extract("this is ridiculous, you cheat")

	if a.Respect != domain.RespectLow {
		t.Fatalf("respect = %q, want low", a.Respect)
	}
	if a.Sentiment != domain.SentimentNegative {
		t.Fatalf("sentiment = %q, want negative", a.Sentiment)
	}
}

func TestExtractNeutralDefaults(t *testing.T) {
	a := newExtractor().Extract("hello hello")

	if a.Strategy != domain.StrategyNone {
		t.Fatalf("strategy = %q, want %q", a.Strategy, domain.StrategyNone)
	}
	if a.Sentiment != domain.SentimentNeutral {
		t.Fatalf("sentiment = %q, want neutral", a.Sentiment)
	}
	if a.Respect != domain.RespectMedium {
		t.Fatalf("respect = %q, want medium", a.Respect)
	}
	if len(a.Markers.LocalTerms) != 0 || len(a.Markers.PlaceRefs) != 0 {
		t.Fatalf("markers = %+v, want empty", a.Markers)
	}
}
