package followup

import (
	"fmt"
	"strings"

	"github.com/wolfman30/gtm-followup/internal/leads"
)

// MaxMessageChars is the length the model is asked to stay under. It is advisory.
const MaxMessageChars = 160

// OutboundMessage pairs the prompt with the text that will be delivered.
type OutboundMessage struct {
	Prompt string
	Text   string
}

// BuildPrompt renders the generation prompt for a lead that is due for follow-up.
func BuildPrompt(lead leads.Lead, daysSince int) string {
	var b strings.Builder
	b.WriteString("You are a short professional sales follow-up assistant. ")
	fmt.Fprintf(&b, "Create a concise WhatsApp follow-up message (<= %d chars).\n\n", MaxMessageChars)
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "LastMessage: %s\n", lead.LastMessage)
	fmt.Fprintf(&b, "DaysSince: %d\n\n", daysSince)
	b.WriteString("Reply with only the message text (no explanations).")
	return b.String()
}

// FallbackMessage is sent when generation fails.
func FallbackMessage(name string) string {
	return fmt.Sprintf("Hi %s, following up on our last chat. Are you available this week?", name)
}
