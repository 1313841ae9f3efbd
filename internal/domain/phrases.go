package domain

// PhraseBank holds every canned driver line the response synthesizer can draw
// from. Templates may carry {price}, {location} and {round} placeholders.
type PhraseBank struct {
	WalkAwayPanic []string
	WalkAwayFirm  []string

	CulturalUncle   []string
	CulturalGeneric []string

	Logical []string

	AggressiveImpatient []string
	AggressivePatient   []string

	General []string

	MoodHappy   []string
	MoodAnnoyed []string

	MoodEmojis    map[Mood][]string
	Interjections []string
	Jokes         []string
}

// Validate rejects banks that could leave the synthesizer with an empty pool.
// Every pool a strategy branch can draw from alone must be non-empty; the
// mood pools only ever extend a base pool and may stay empty.
func (p PhraseBank) Validate() error {
	pools := []struct {
		name    string
		entries []string
	}{
		{"walk_away_panic", p.WalkAwayPanic},
		{"walk_away_firm", p.WalkAwayFirm},
		{"cultural_uncle", p.CulturalUncle},
		{"cultural_generic", p.CulturalGeneric},
		{"logical", p.Logical},
		{"aggressive_impatient", p.AggressiveImpatient},
		{"aggressive_patient", p.AggressivePatient},
		{"general", p.General},
	}
	for _, pool := range pools {
		if len(pool.entries) == 0 {
			return &ConfigurationError{Field: pool.name, Reason: "phrase pool is empty"}
		}
	}
	if len(p.MoodEmojis) == 0 {
		return &ConfigurationError{Field: "mood_emojis", Reason: "phrase bank has no mood emojis"}
	}
	return nil
}

// DefaultPhrases returns the built-in driver phrase bank.
func DefaultPhrases() PhraseBank {
	return PhraseBank{
		WalkAwayPanic: []string{
			"Ayyyo sir! Don't go! Okay okay, ₹{price} final price!",
			"Wait wait! Let's discuss properly. ₹{price} is reasonable, no?",
			"Sir sir! Come back! For you special rate ₹{price}!",
			"Don't walk in this heat! ₹{price} and we have deal!",
		},
		WalkAwayFirm: []string{
			"Go ahead sir, other drivers will charge double!",
			"No problem, plenty customers waiting at airport.",
			"₹{price} is fixed rate. Take it or leave it.",
			"Good luck finding cheaper rate in this area!",
		},
		CulturalUncle: []string{
			"Ayyye, you are good family person! For you ₹{price} only.",
			"Your father taught you well - respecting elders! ₹{price} is fair.",
			"Beta, family discount applies. ₹{price} is minimum for me.",
			"You speak like proper Malayalam person! ₹{price} final rate.",
		},
		CulturalGeneric: []string{
			"Good, you know local culture! ₹{price} is standard rate.",
			"Malayalam speaking? Then you understand ₹{price} is fair price.",
			"Local person will not cheat local person. ₹{price} correct rate.",
			"You are like brother to me! ₹{price} is friendship rate.",
		},
		Logical: []string{
			"Sir, meter shows ₹{price} plus waiting time and petrol cost.",
			"Distance wise calculation: ₹{price} is accurate rate.",
			"Government rate is ₹{price} for this route during {round} time.",
			"Mathematically speaking, ₹{price} covers all expenses properly.",
		},
		AggressiveImpatient: []string{
			"Why are you shouting? ₹{price} is final rate!",
			"Demanding will not reduce price! ₹{price} only!",
			"Other customers are waiting! ₹{price} or find another auto!",
			"No point arguing! Government fixed rate is ₹{price}!",
		},
		AggressivePatient: []string{
			"I understand you are upset, but ₹{price} is fair rate.",
			"Please calm down sir. ₹{price} is reasonable for everyone.",
			"Let's discuss politely. ₹{price} includes all charges.",
			"No need to be angry. ₹{price} is standard rate.",
		},
		General: []string{
			"₹{price} is very reasonable rate for this distance.",
			"Considering traffic and petrol price, ₹{price} is minimum.",
			"Other drivers charge more! ₹{price} is good deal for you.",
			"Fair price for fair service! ₹{price} is correct rate.",
		},
		MoodHappy: []string{
			"😊 Today is good day! ₹{price} and both of us will be happy!",
			"You are very nice person to talk with! ₹{price} is friendship rate!",
			"Good negotiation makes good business! ₹{price} works for both!",
		},
		MoodAnnoyed: []string{
			"😤 Too much talking! ₹{price} is final rate!",
			"Why waste time? ₹{price} is standard rate everywhere!",
			"Other customers don't argue so much! ₹{price} only!",
		},
		MoodEmojis: map[Mood][]string{
			MoodHappy:   {"😊", "🙂", "😄"},
			MoodNeutral: {"😐", "🤔"},
			MoodAnnoyed: {"😤", "😑", "🙄"},
			MoodAngry:   {"😠", "😡"},
		},
		Interjections: []string{"Ayyyo!", "What to do?", "Like this only!", "God knows!"},
		Jokes: []string{
			" Life is like auto meter - sometimes fair, sometimes broken! 😄",
			" In Kerala, even coconuts negotiate their price! 🥥",
			" Auto driving taught me patience - and you are testing it! 😅",
		},
	}
}
