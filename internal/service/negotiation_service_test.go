package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"auto-bargain/internal/domain"
)

func newTestService(t *testing.T, opts ...Option) *NegotiationService {
	t.Helper()
	base := []Option{WithRandFactory(func() Rand { return NewRand(7) })}
	svc, err := NewNegotiationService(
		zap.NewNop(),
		domain.DefaultLocations(),
		domain.DefaultPhrases(),
		domain.DefaultKeywords(),
		append(base, opts...)...,
	)
	if err != nil {
		t.Fatalf("NewNegotiationService: %v", err)
	}
	return svc
}

type erroringResponder struct{}

func (erroringResponder) Generate(context.Context, domain.LocationConfig, SessionContext, domain.UtteranceAnalysis, []domain.TurnRecord, string) (DriverReply, error) {
	return DriverReply{}, errors.New("provider down")
}

type cannedResponder struct {
	text   string
	source string
}

func (c cannedResponder) Generate(context.Context, domain.LocationConfig, SessionContext, domain.UtteranceAnalysis, []domain.TurnRecord, string) (DriverReply, error) {
	return DriverReply{Text: c.text, Source: c.source}, nil
}

func TestStartSessionOpeningState(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.StartSession("uncle")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if info.Price != 60 {
		t.Fatalf("opening price = %d, want 60", info.Price)
	}
	if info.FairPrice != 50 {
		t.Fatalf("fair price = %d, want 50", info.FairPrice)
	}
	if info.Mood != domain.MoodNeutral {
		t.Fatalf("opening mood = %q, want neutral", info.Mood)
	}
	if info.MaxRounds != DefaultMaxRounds {
		t.Fatalf("max rounds = %d, want %d", info.MaxRounds, DefaultMaxRounds)
	}
	if info.Greeting == "" || info.ID == "" {
		t.Fatalf("incomplete session info: %+v", info)
	}
}

func TestStartSessionUnknownLocation(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.StartSession("mars"); !errors.Is(err, domain.ErrUnknownLocation) {
		t.Fatalf("err = %v, want ErrUnknownLocation", err)
	}
}

func TestSubmitPoliteOpeningLowersPrice(t *testing.T) {
	svc := newTestService(t)
	info, _ := svc.StartSession("uncle")

	turn, err := svc.SubmitUtterance(context.Background(), info.ID, "Uncle, please give me a good rate")
	if err != nil {
		t.Fatalf("SubmitUtterance: %v", err)
	}
	if turn.Round != 1 {
		t.Fatalf("round = %d, want 1", turn.Round)
	}
	if turn.NewPrice >= info.Price || turn.NewPrice < info.FairPrice {
		t.Fatalf("price = %d, want in [%d, %d)", turn.NewPrice, info.FairPrice, info.Price)
	}
	if turn.Reply == "" {
		t.Fatal("empty reply")
	}
	if turn.Ended {
		t.Fatal("session ended on the first turn")
	}

	snap, err := svc.Snapshot(info.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(snap.History))
	}
	if snap.History[0].Analysis.Strategy != domain.StrategyCultural {
		t.Fatalf("recorded strategy = %q, want cultural", snap.History[0].Analysis.Strategy)
	}
}

func TestWalkAwayThreatTriggersPanic(t *testing.T) {
	svc := newTestService(t)
	info, _ := svc.StartSession("uncle")
	ctx := context.Background()

	if _, err := svc.SubmitUtterance(ctx, info.ID, "hello hello"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}

	turn, err := svc.SubmitUtterance(ctx, info.ID, "forget it, I will take the bus")
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if turn.Stance != domain.StancePanic {
		t.Fatalf("stance = %q, want panic", turn.Stance)
	}
	if !strings.Contains(turn.DriverThoughts, "Bluffing or serious?") {
		t.Fatalf("driver thoughts = %q, want walk-away doubt", turn.DriverThoughts)
	}
}

func TestNegotiationEndsAtRoundCap(t *testing.T) {
	svc := newTestService(t)
	info, _ := svc.StartSession("airport")
	ctx := context.Background()

	prev := info.Price
	var last domain.TurnResult
	for round := 1; round <= DefaultMaxRounds; round++ {
		turn, err := svc.SubmitUtterance(ctx, info.ID, "hello hello")
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if turn.Round != round {
			t.Fatalf("round = %d, want %d", turn.Round, round)
		}
		if turn.NewPrice > prev {
			t.Fatalf("round %d: price rose from %d to %d", round, prev, turn.NewPrice)
		}
		if turn.NewPrice < info.FairPrice {
			t.Fatalf("round %d: price %d fell below floor %d", round, turn.NewPrice, info.FairPrice)
		}
		if round < DefaultMaxRounds && turn.Ended {
			t.Fatalf("ended early at round %d", round)
		}
		prev = turn.NewPrice
		last = turn
	}

	if !last.Ended {
		t.Fatal("session still open at the round cap")
	}
	if last.Score == nil {
		t.Fatal("ended session has no score")
	}
	if last.Score.RoundsUsed != DefaultMaxRounds {
		t.Fatalf("rounds used = %d, want %d", last.Score.RoundsUsed, DefaultMaxRounds)
	}
	if last.Score.Grade == "" {
		t.Fatal("score has no grade")
	}

	if _, err := svc.SubmitUtterance(ctx, info.ID, "one more"); !errors.Is(err, domain.ErrSessionEnded) {
		t.Fatalf("err = %v, want ErrSessionEnded", err)
	}
}

func TestResponderFailureMatchesTemplateOnlyTurn(t *testing.T) {
	plain := newTestService(t)
	broken := newTestService(t, WithResponder(erroringResponder{}))
	ctx := context.Background()

	infoA, _ := plain.StartSession("market")
	infoB, _ := broken.StartSession("market")

	turnA, err := plain.SubmitUtterance(ctx, infoA.ID, "hello hello")
	if err != nil {
		t.Fatalf("plain turn: %v", err)
	}
	turnB, err := broken.SubmitUtterance(ctx, infoB.ID, "hello hello")
	if err != nil {
		t.Fatalf("broken-responder turn: %v", err)
	}

	if !reflect.DeepEqual(turnA, turnB) {
		t.Fatalf("responder failure changed the turn:\nplain:  %+v\nbroken: %+v", turnA, turnB)
	}
}

func TestExternalResponderReplyUsed(t *testing.T) {
	svc := newTestService(t, WithResponder(cannedResponder{text: "Okay okay, I give special price.", source: "mock"}))
	info, _ := svc.StartSession("market")

	turn, err := svc.SubmitUtterance(context.Background(), info.ID, "hello hello")
	if err != nil {
		t.Fatalf("SubmitUtterance: %v", err)
	}
	if !strings.Contains(turn.Reply, "Okay okay, I give special price.") {
		t.Fatalf("external reply ignored, got %q", turn.Reply)
	}
}

func TestFallbackTaggedReplyIgnored(t *testing.T) {
	svc := newTestService(t, WithResponder(cannedResponder{text: "should not appear", source: SourceFallback}))
	info, _ := svc.StartSession("market")

	turn, err := svc.SubmitUtterance(context.Background(), info.ID, "hello hello")
	if err != nil {
		t.Fatalf("SubmitUtterance: %v", err)
	}
	if strings.Contains(turn.Reply, "should not appear") {
		t.Fatalf("fallback-tagged reply leaked: %q", turn.Reply)
	}
}

func TestSubmitEmptyUtterance(t *testing.T) {
	svc := newTestService(t)
	info, _ := svc.StartSession("uncle")

	if _, err := svc.SubmitUtterance(context.Background(), info.ID, "   "); !errors.Is(err, domain.ErrEmptyUtterance) {
		t.Fatalf("err = %v, want ErrEmptyUtterance", err)
	}

	// A rejected utterance must not advance the session.
	snap, _ := svc.Snapshot(info.ID)
	if snap.Round != 0 || snap.CurrentPrice != info.Price {
		t.Fatalf("rejected input advanced the session: %+v", snap)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SubmitUtterance(context.Background(), "nope", "hello"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestCulturalPointsAndMood(t *testing.T) {
	svc := newTestService(t)
	info, _ := svc.StartSession("uncle")

	turn, err := svc.SubmitUtterance(context.Background(), info.ID, "namaskaram chettan, going to kochi")
	if err != nil {
		t.Fatalf("SubmitUtterance: %v", err)
	}
	if turn.Mood != domain.MoodHappy {
		t.Fatalf("mood = %q, want happy", turn.Mood)
	}

	snap, _ := svc.Snapshot(info.ID)
	// Two local terms at 2 points each plus one place reference.
	if snap.CulturalPoints != 5 {
		t.Fatalf("cultural points = %d, want 5", snap.CulturalPoints)
	}
}

func TestResetSession(t *testing.T) {
	svc := newTestService(t)
	info, _ := svc.StartSession("uncle")
	ctx := context.Background()

	if _, err := svc.SubmitUtterance(ctx, info.ID, "hello hello"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if _, err := svc.SubmitUtterance(ctx, info.ID, "uncle please"); err != nil {
		t.Fatalf("turn 2: %v", err)
	}

	reset, err := svc.ResetSession(info.ID)
	if err != nil {
		t.Fatalf("ResetSession: %v", err)
	}
	if reset.ID != info.ID {
		t.Fatalf("reset changed the session ID: %q vs %q", reset.ID, info.ID)
	}
	if reset.Price != 60 {
		t.Fatalf("reset price = %d, want 60", reset.Price)
	}

	snap, _ := svc.Snapshot(info.ID)
	if snap.Round != 0 || len(snap.History) != 0 || snap.Ended || snap.CulturalPoints != 0 {
		t.Fatalf("reset left state behind: %+v", snap)
	}
}

func TestShouldEndLadderFallsThrough(t *testing.T) {
	svc := newTestService(t)
	loc := domain.DefaultLocations()["uncle"]

	// Angry at the fair floor on round 5: the failed angry roll (0.5 <= 0.6)
	// must not swallow the fair-floor roll (0.6 > 0.5).
	sess := &negotiationSession{
		loc:          loc,
		rng:          &stubRand{floats: []float64{0.5, 0.6}},
		mood:         domain.MoodAngry,
		round:        5,
		currentPrice: loc.FairPrice,
	}
	if !svc.shouldEnd(sess) {
		t.Fatal("failed angry roll should fall through to the fair-floor check")
	}
}

func TestSnapshotIsReadOnly(t *testing.T) {
	observed := newTestService(t)
	control := newTestService(t)
	ctx := context.Background()

	infoA, _ := observed.StartSession("market")
	infoB, _ := control.StartSession("market")

	// Repeated reads report the same greeting.
	for i := 0; i < 3; i++ {
		snap, err := observed.Snapshot(infoA.ID)
		if err != nil {
			t.Fatalf("Snapshot %d: %v", i, err)
		}
		if snap.Info.Greeting != infoA.Greeting {
			t.Fatalf("greeting drifted on read %d: %q vs %q", i, snap.Info.Greeting, infoA.Greeting)
		}
	}

	// Reads between turns must not perturb the game-mechanical draws.
	turnA, err := observed.SubmitUtterance(ctx, infoA.ID, "hello hello")
	if err != nil {
		t.Fatalf("observed turn: %v", err)
	}
	turnB, err := control.SubmitUtterance(ctx, infoB.ID, "hello hello")
	if err != nil {
		t.Fatalf("control turn: %v", err)
	}
	if !reflect.DeepEqual(turnA, turnB) {
		t.Fatalf("snapshots changed the turn outcome:\nobserved: %+v\ncontrol:  %+v", turnA, turnB)
	}
}

func TestNewNegotiationServiceValidation(t *testing.T) {
	t.Run("broken location preset", func(t *testing.T) {
		bad := domain.DefaultLocations()
		loc := bad["uncle"]
		loc.FairPrice = 0
		bad["uncle"] = loc

		_, err := NewNegotiationService(zap.NewNop(), bad, domain.DefaultPhrases(), domain.DefaultKeywords())
		var cfgErr *domain.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("err = %v, want ConfigurationError", err)
		}
	})

	t.Run("empty phrase bank", func(t *testing.T) {
		_, err := NewNegotiationService(zap.NewNop(), domain.DefaultLocations(), domain.PhraseBank{}, domain.DefaultKeywords())
		if err == nil {
			t.Fatal("expected error for empty phrase bank")
		}
	})

	t.Run("missing strategy pools", func(t *testing.T) {
		// A bank with only the general pool would strand the walk-away and
		// cultural branches without templates; it must not build.
		bank := domain.PhraseBank{
			General:    []string{"₹{price} only."},
			MoodEmojis: map[domain.Mood][]string{domain.MoodNeutral: {"😐"}},
		}
		_, err := NewNegotiationService(zap.NewNop(), domain.DefaultLocations(), bank, domain.DefaultKeywords())
		var cfgErr *domain.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("err = %v, want ConfigurationError", err)
		}
	})

	t.Run("empty keyword table", func(t *testing.T) {
		_, err := NewNegotiationService(zap.NewNop(), domain.DefaultLocations(), domain.DefaultPhrases(), domain.KeywordTable{})
		if err == nil {
			t.Fatal("expected error for empty keyword table")
		}
	})
}
