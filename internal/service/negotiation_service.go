package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"auto-bargain/internal/domain"
)

// DefaultMaxRounds bounds every negotiation unless overridden.
const DefaultMaxRounds = 8

// NegotiationService owns all live sessions and runs the per-turn pipeline:
// extract signals, update the opponent estimate, advance the stance, compute
// the price concession, synthesize the reply and decide termination.
type NegotiationService struct {
	logger    *zap.Logger
	locations map[string]domain.LocationConfig
	phrases   domain.PhraseBank
	extractor *SignalExtractor
	responder DriverResponder
	maxRounds int
	newRand   func() Rand

	mu       sync.RWMutex
	sessions map[string]*negotiationSession
}

// Option tweaks service construction.
type Option func(*NegotiationService)

// WithMaxRounds overrides the default round cap.
func WithMaxRounds(n int) Option {
	return func(s *NegotiationService) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithRandFactory substitutes the randomness source used for new sessions.
// Tests inject deterministic sequences here.
func WithRandFactory(f func() Rand) Option {
	return func(s *NegotiationService) { s.newRand = f }
}

// WithResponder plugs in an optional external text generator. Failures are
// logged and the template pool takes over; they never surface to the caller.
func WithResponder(r DriverResponder) Option {
	return func(s *NegotiationService) { s.responder = r }
}

// NewNegotiationService validates the configuration tables and builds the
// service. A broken preset or empty phrase pool fails construction: price
// floors and templates are safety-critical and must not be defaulted.
func NewNegotiationService(
	logger *zap.Logger,
	locations map[string]domain.LocationConfig,
	phrases domain.PhraseBank,
	keywords domain.KeywordTable,
	opts ...Option,
) (*NegotiationService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(locations) == 0 {
		return nil, &domain.ConfigurationError{Field: "locations", Reason: "no location presets"}
	}
	for id, loc := range locations {
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("location %q: %w", id, err)
		}
	}
	if err := phrases.Validate(); err != nil {
		return nil, err
	}
	if err := keywords.Validate(); err != nil {
		return nil, err
	}

	s := &NegotiationService{
		logger:    logger,
		locations: locations,
		phrases:   phrases,
		extractor: NewSignalExtractor(keywords),
		maxRounds: DefaultMaxRounds,
		newRand:   func() Rand { return NewRand(time.Now().UnixNano()) },
		sessions:  make(map[string]*negotiationSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SessionInfo is what a new or reset session exposes to the shell.
type SessionInfo struct {
	ID         string      `json:"id"`
	Location   string      `json:"location"`
	Difficulty string      `json:"difficulty"`
	Greeting   string      `json:"greeting"`
	Price      int         `json:"price"`
	FairPrice  int         `json:"fair_price"`
	MaxRounds  int         `json:"max_rounds"`
	Mood       domain.Mood `json:"mood"`
}

type negotiationSession struct {
	mu sync.Mutex

	id  string
	loc domain.LocationConfig
	rng Rand

	stance *StanceMachine
	synth  *ResponseSynthesizer

	profile          domain.OpponentProfile
	greeting         string
	currentPrice     int
	round            int
	mood             domain.Mood
	history          []domain.TurnRecord
	recentCategories []string
	culturalPoints   int
	ended            bool
	score            *domain.Score
}

// StartSession creates a session for the given location preset.
func (s *NegotiationService) StartSession(locationID string) (SessionInfo, error) {
	loc, ok := s.locations[locationID]
	if !ok {
		return SessionInfo{}, fmt.Errorf("%w: %q", domain.ErrUnknownLocation, locationID)
	}

	rng := s.newRand()
	sess := &negotiationSession{
		id:           uuid.NewString(),
		loc:          loc,
		rng:          rng,
		stance:       NewStanceMachine(loc.Difficulty, rng),
		profile:      domain.NewOpponentProfile(),
		currentPrice: loc.InitialPrice(),
		mood:         domain.MoodNeutral,
	}
	sess.synth = NewResponseSynthesizer(s.phrases, loc, rng)
	sess.greeting = greetingFor(sess)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("session started",
		zap.String("session_id", sess.id),
		zap.String("location", loc.ID),
		zap.Int("initial_price", sess.currentPrice),
		zap.String("stance", string(sess.stance.Current())),
	)

	return s.info(sess), nil
}

// SubmitUtterance runs one full negotiation turn. The session lock keeps
// turns strictly sequential; state is either fully advanced or untouched.
func (s *NegotiationService) SubmitUtterance(ctx context.Context, sessionID, text string) (domain.TurnResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return domain.TurnResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.ended {
		return domain.TurnResult{}, domain.ErrSessionEnded
	}
	if strings.TrimSpace(text) == "" {
		return domain.TurnResult{}, domain.ErrEmptyUtterance
	}

	sess.round++
	analysis := s.extractor.Extract(text)
	sess.profile = UpdateProfile(sess.profile, analysis, sess.round)
	stance := sess.stance.Advance(analysis, sess.profile, sess.round, sess.rng)

	// The reply quotes the asking price as it stood when the passenger
	// spoke; the concession lands right after.
	sctx := SessionContext{
		CurrentPrice: sess.currentPrice,
		FairPrice:    sess.loc.FairPrice,
		Round:        sess.round,
		MaxRounds:    s.maxRounds,
		Mood:         sess.mood,
		Stance:       stance,
	}

	adjustment := ComputeAdjustment(analysis, sess.profile, stance, sess.currentPrice, sess.round, sess.loc, sess.rng)

	external := s.externalReply(ctx, sess, sctx, analysis, text)
	reply, category := sess.synth.Synthesize(analysis, sctx, external, sess.recentCategories)

	newPrice := sess.currentPrice - adjustment
	if newPrice < sess.loc.FairPrice {
		newPrice = sess.loc.FairPrice
	}
	sess.currentPrice = newPrice

	sess.mood = sess.mood.Shift(moodDelta(analysis, sess.round))
	sess.culturalPoints += 2*len(analysis.Markers.LocalTerms) + len(analysis.Markers.PlaceRefs)

	sess.history = append(sess.history, domain.TurnRecord{
		Turn:      sess.round,
		Input:     text,
		Analysis:  analysis,
		Price:     sess.currentPrice,
		Mood:      sess.mood,
		Reply:     reply,
		CreatedAt: time.Now().UTC(),
	})
	sess.recentCategories = append(sess.recentCategories, category)
	if len(sess.recentCategories) > recentCategoryWindow {
		sess.recentCategories = sess.recentCategories[1:]
	}

	if s.shouldEnd(sess) {
		sess.ended = true
		score := s.computeScore(sess)
		sess.score = &score
	}

	s.logger.Info("turn processed",
		zap.String("session_id", sess.id),
		zap.Int("round", sess.round),
		zap.String("strategy", string(analysis.Strategy)),
		zap.Int("adjustment", adjustment),
		zap.Int("price", sess.currentPrice),
		zap.String("mood", string(sess.mood)),
		zap.Float64("patience_estimate", sess.profile.Patience),
		zap.Bool("ended", sess.ended),
	)

	return domain.TurnResult{
		Reply:          reply,
		NewPrice:       sess.currentPrice,
		Mood:           sess.mood,
		Round:          sess.round,
		Stance:         stance,
		DriverThoughts: driverThoughts(sess.profile, analysis),
		Ended:          sess.ended,
		Score:          sess.score,
	}, nil
}

// ResetSession puts an existing session back to its opening state, keeping
// the same handle.
func (s *NegotiationService) ResetSession(sessionID string) (SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionInfo{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.stance = NewStanceMachine(sess.loc.Difficulty, sess.rng)
	sess.profile = domain.NewOpponentProfile()
	sess.currentPrice = sess.loc.InitialPrice()
	sess.round = 0
	sess.mood = domain.MoodNeutral
	sess.history = nil
	sess.recentCategories = nil
	sess.culturalPoints = 0
	sess.ended = false
	sess.score = nil
	sess.greeting = greetingFor(sess)

	s.logger.Info("session reset", zap.String("session_id", sess.id))
	return s.info(sess), nil
}

// SessionSnapshot is a read-only view of a live session.
type SessionSnapshot struct {
	Info           SessionInfo         `json:"info"`
	Round          int                 `json:"round"`
	CurrentPrice   int                 `json:"current_price"`
	CulturalPoints int                 `json:"cultural_points"`
	Ended          bool                `json:"ended"`
	Score          *domain.Score       `json:"score,omitempty"`
	History        []domain.TurnRecord `json:"history"`
}

// Snapshot returns the current state of a session.
func (s *NegotiationService) Snapshot(sessionID string) (SessionSnapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	history := make([]domain.TurnRecord, len(sess.history))
	copy(history, sess.history)

	return SessionSnapshot{
		Info:           s.info(sess),
		Round:          sess.round,
		CurrentPrice:   sess.currentPrice,
		CulturalPoints: sess.culturalPoints,
		Ended:          sess.ended,
		Score:          sess.score,
		History:        history,
	}, nil
}

func (s *NegotiationService) session(id string) (*negotiationSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *NegotiationService) info(sess *negotiationSession) SessionInfo {
	return SessionInfo{
		ID:         sess.id,
		Location:   sess.loc.Name,
		Difficulty: sess.loc.Difficulty,
		Greeting:   sess.greeting,
		Price:      sess.currentPrice,
		FairPrice:  sess.loc.FairPrice,
		MaxRounds:  s.maxRounds,
		Mood:       sess.mood,
	}
}

// greetingFor picks the opening line once, rendered at the asking price the
// session opens with. Reads never draw from the session RNG.
func greetingFor(sess *negotiationSession) string {
	return strings.ReplaceAll(pickString(sess.rng, sess.loc.Greetings), "{price}", strconv.Itoa(sess.currentPrice))
}

// externalReply asks the configured responder, if any. Errors and fallback-
// tagged replies collapse to nil so the turn proceeds on local templates.
func (s *NegotiationService) externalReply(
	ctx context.Context,
	sess *negotiationSession,
	sctx SessionContext,
	a domain.UtteranceAnalysis,
	text string,
) *DriverReply {
	if s.responder == nil {
		return nil
	}
	reply, err := s.responder.Generate(ctx, sess.loc, sctx, a, sess.history, text)
	if err != nil {
		s.logger.Warn("external responder failed",
			zap.String("session_id", sess.id),
			zap.Int("round", sess.round),
			zap.Error(err),
		)
		return nil
	}
	if reply.Source == SourceFallback || strings.TrimSpace(reply.Text) == "" {
		return nil
	}
	return &reply
}

// moodDelta computes the bounded mood walk for one turn.
func moodDelta(a domain.UtteranceAnalysis, round int) float64 {
	delta := 0.0
	switch a.Sentiment {
	case domain.SentimentPositive:
		delta++
	case domain.SentimentNegative:
		delta--
	}
	switch a.Respect {
	case domain.RespectHigh:
		delta += 0.5
	case domain.RespectLow:
		delta--
	}
	if len(a.Markers.LocalTerms) > 0 {
		delta += 0.5
	}
	switch a.Strategy {
	case domain.StrategyWalkAway:
		delta -= 0.5
	case domain.StrategyFlattery:
		delta += 0.5
	}
	// Long negotiations wear the driver down.
	if round > 5 {
		delta -= 0.2
	}
	return delta
}

func driverThoughts(p domain.OpponentProfile, a domain.UtteranceAnalysis) string {
	var thoughts []string
	if p.IsLocal {
		thoughts = append(thoughts, "This person seems to know local rates...")
	}
	if p.NegotiationSkill > 5 {
		thoughts = append(thoughts, "Good negotiator! Must be careful with pricing.")
	}
	if a.Strategy == domain.StrategyWalkAway {
		thoughts = append(thoughts, "Bluffing or serious? Hard to tell...")
	}
	return strings.Join(thoughts, " ")
}

// shouldEnd evaluates the termination ladder once per turn, in priority
// order. Nothing ends before round 3; the round cap always ends it. A failed
// probabilistic roll falls through to the remaining rungs.
func (s *NegotiationService) shouldEnd(sess *negotiationSession) bool {
	if sess.round < 3 {
		return false
	}
	if sess.round >= s.maxRounds {
		return true
	}
	if sess.mood == domain.MoodAngry && sess.round >= 4 && sess.rng.Float64() > 0.6 {
		return true
	}
	if sess.currentPrice <= sess.loc.FairPrice && sess.round >= 4 && sess.rng.Float64() > 0.5 {
		return true
	}
	if float64(sess.currentPrice) <= float64(sess.loc.FairPrice)*1.05 && sess.round >= 5 && sess.rng.Float64() > 0.8 {
		return true
	}
	return false
}

// computeScore is the deterministic end-of-session scoring: savings ratio up
// to 50, cultural points up to 20, round efficiency, and a mood bonus.
func (s *NegotiationService) computeScore(sess *negotiationSession) domain.Score {
	initial := sess.loc.InitialPrice()
	maxSavings := initial - sess.loc.FairPrice
	saved := initial - sess.currentPrice

	savingsScore := 0
	if maxSavings > 0 {
		savingsScore = int(float64(saved)/float64(maxSavings)*50 + 0.5)
	}

	culturalBonus := sess.culturalPoints * 2
	if culturalBonus > 20 {
		culturalBonus = 20
	}

	efficiencyBonus := (s.maxRounds - sess.round) * 2
	if efficiencyBonus < 0 {
		efficiencyBonus = 0
	}

	moodBonus := 0
	switch sess.mood {
	case domain.MoodHappy:
		moodBonus = 15
	case domain.MoodNeutral:
		moodBonus = 5
	}

	total := savingsScore + culturalBonus + efficiencyBonus + moodBonus
	if total < 0 {
		total = 0
	}

	return domain.Score{
		Total:           total,
		SavingsScore:    savingsScore,
		CulturalBonus:   culturalBonus,
		EfficiencyBonus: efficiencyBonus,
		MoodBonus:       moodBonus,
		Grade:           grade(total),
		InitialPrice:    initial,
		FinalPrice:      sess.currentPrice,
		Saved:           saved,
		RoundsUsed:      sess.round,
	}
}

func grade(total int) string {
	switch {
	case total >= 80:
		return "A+"
	case total >= 60:
		return "B+"
	case total >= 40:
		return "C+"
	default:
		return "D"
	}
}
