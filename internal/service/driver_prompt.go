package service

import (
	"fmt"
	"strings"

	"auto-bargain/internal/domain"
)

// DriverPromptBuilder assembles the persona prompt handed to an external text
// generator when one is configured.
type DriverPromptBuilder struct{}

const driverSystemPrompt = `You are a REAL auto-rickshaw driver in Kerala, India. Respond dynamically and authentically to the passenger's exact words and negotiation tactics.
- If they plead respectfully, react to the respect.
- If they threaten to walk away, show concern or defiance.
- If they claim to be local, adjust your attitude.
- If they use Malayalam, appreciate the effort.
Reference real costs (petrol, traffic, vehicle wear), use Malayalam naturally, and mix business sense with human emotion. Keep the reply under 100 words and include the price when relevant.`

// Build renders the full prompt: persona, current situation, the structured
// read of the passenger, recent exchanges and the utterance to answer.
func (DriverPromptBuilder) Build(
	loc domain.LocationConfig,
	ctx SessionContext,
	a domain.UtteranceAnalysis,
	history []domain.TurnRecord,
	utterance string,
) string {
	var sb strings.Builder

	sb.WriteString(driverSystemPrompt)
	sb.WriteString("\n\nCURRENT SITUATION:\n")
	fmt.Fprintf(&sb, "- Location: %s (%s difficulty)\n", loc.Name, loc.Difficulty)
	fmt.Fprintf(&sb, "- Your asking price: ₹%d\n", ctx.CurrentPrice)
	fmt.Fprintf(&sb, "- Fair/target price: ₹%d\n", ctx.FairPrice)
	fmt.Fprintf(&sb, "- Price gap: ₹%d above fair price\n", ctx.CurrentPrice-ctx.FairPrice)
	fmt.Fprintf(&sb, "- Your current mood: %s\n", ctx.Mood)
	fmt.Fprintf(&sb, "- Negotiation round: %d/%d\n", ctx.Round, ctx.MaxRounds)

	sb.WriteString("\nPASSENGER ANALYSIS (respond to this):\n")
	fmt.Fprintf(&sb, "- Strategy: %s\n", a.Strategy)
	fmt.Fprintf(&sb, "- Respect level: %s\n", a.Respect)
	fmt.Fprintf(&sb, "- Sentiment: %s\n", a.Sentiment)
	if a.PriceExpectation != nil {
		fmt.Fprintf(&sb, "- They mentioned ₹%d\n", *a.PriceExpectation)
	}

	if len(history) > 0 {
		sb.WriteString("\nRECENT CONVERSATION:\n")
		start := len(history) - 4
		if start < 0 {
			start = 0
		}
		for _, rec := range history[start:] {
			fmt.Fprintf(&sb, "PASSENGER: %q\nYOU: %q\n", rec.Input, rec.Reply)
		}
	}

	fmt.Fprintf(&sb, "\nPASSENGER JUST SAID: %q\n\nHow do you respond as the driver? Be natural and dynamic.", utterance)

	return sb.String()
}
