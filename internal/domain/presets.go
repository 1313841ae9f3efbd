package domain

// DefaultLocations returns the built-in pickup-spot presets, keyed by ID.
// Callers get a fresh map each time; presets themselves are treated as
// immutable and are only ever passed by value into sessions.
func DefaultLocations() map[string]LocationConfig {
	locations := []LocationConfig{
		{
			ID:                "airport",
			Name:              "Kochi Airport",
			Difficulty:        "nightmare",
			Description:       "Tourist trap central. Drivers here know you're desperate and have deep pockets.",
			BaseFare:          250,
			FairPrice:         180,
			InitialMultiplier: 3.0,
			Stubbornness:      0.9,
			Greediness:        0.95,
			Personality: PersonalityConfig{
				Patience:        3,
				Humor:           0.2,
				LocalKnowledge:  0.3,
				TouristFriendly: 0.1,
			},
			Greetings: []string{
				"Where to, sir? Airport rate is different, you know.",
				"Come, come! I give you good price. Only ₹{price}!",
				"Foreign? No problem, I speak English. Special price for you!",
				"Taxi queue very long, sir. I take you faster!",
			},
		},
		{
			ID:                "railway",
			Name:              "Ernakulam Railway Station",
			Difficulty:        "hard",
			Description:       "Busy station with experienced drivers who know all the tricks.",
			BaseFare:          150,
			FairPrice:         120,
			InitialMultiplier: 2.2,
			Stubbornness:      0.7,
			Greediness:        0.8,
			Personality: PersonalityConfig{
				Patience:        5,
				Humor:           0.4,
				LocalKnowledge:  0.5,
				TouristFriendly: 0.3,
			},
			Greetings: []string{
				"Station to where, brother? Meter not working today.",
				"Heavy luggage? Extra charge, but I help you!",
				"Which platform you came from? Okay, I know best route.",
				"Train late? No problem, I wait. But waiting charge applies.",
			},
		},
		{
			ID:                "market",
			Name:              "Broadway Market",
			Difficulty:        "medium",
			Description:       "Local market area where some negotiation is expected.",
			BaseFare:          100,
			FairPrice:         80,
			InitialMultiplier: 1.8,
			Stubbornness:      0.5,
			Greediness:        0.6,
			Personality: PersonalityConfig{
				Patience:        7,
				Humor:           0.6,
				LocalKnowledge:  0.7,
				TouristFriendly: 0.5,
			},
			Greetings: []string{
				"Market shopping finished? Bags are heavy, take auto!",
				"Ayyyo, so many bags! Where to carry all this?",
				"Local resident? I give you local rate only.",
				"Market crowd too much today. Auto is best option.",
			},
		},
		{
			ID:                "residential",
			Name:              "Residential Area",
			Difficulty:        "easy",
			Description:       "Local neighborhood where drivers are more reasonable.",
			BaseFare:          80,
			FairPrice:         70,
			InitialMultiplier: 1.4,
			Stubbornness:      0.3,
			Greediness:        0.4,
			Personality: PersonalityConfig{
				Patience:        8,
				Humor:           0.7,
				LocalKnowledge:  0.8,
				TouristFriendly: 0.7,
			},
			Greetings: []string{
				"Evening time, traffic will be less. Good time to travel.",
				"You staying in this area? I know all shortcuts here.",
				"Regular customer? I remember your face!",
				"Local area, so meter rate only. Fair deal.",
			},
		},
		{
			ID:                "uncle",
			Name:              "Local Uncle's Auto",
			Difficulty:        "tutorial",
			Description:       "Uncle Ravi knows your family. He's still going to negotiate though!",
			BaseFare:          60,
			FairPrice:         50,
			InitialMultiplier: 1.2,
			Stubbornness:      0.1,
			Greediness:        0.2,
			Personality: PersonalityConfig{
				Patience:        10,
				Humor:           0.9,
				LocalKnowledge:  1.0,
				TouristFriendly: 0.9,
			},
			Greetings: []string{
				"Ayyye! You are Ramesh's son, no? I know your father!",
				"How is your amma keeping? Long time no see family.",
				"Beta, where you want to go? Uncle will take care.",
				"Your grandfather and I used to work together. Good family!",
			},
		},
	}

	out := make(map[string]LocationConfig, len(locations))
	for _, l := range locations {
		out[l.ID] = l
	}
	return out
}
