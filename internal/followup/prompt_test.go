package followup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolfman30/gtm-followup/internal/leads"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(leads.Lead{Name: "Ada", LastMessage: "Send pricing"}, 5)

	assert.True(t, strings.HasPrefix(prompt, "You are a short professional sales follow-up assistant."))
	assert.Contains(t, prompt, "(<= 160 chars)")
	assert.Contains(t, prompt, "\nName: Ada\n")
	assert.Contains(t, prompt, "\nLastMessage: Send pricing\n")
	assert.Contains(t, prompt, "\nDaysSince: 5\n")
	assert.True(t, strings.HasSuffix(prompt, "Reply with only the message text (no explanations)."))
}

func TestBuildPromptEmptyLastMessage(t *testing.T) {
	prompt := BuildPrompt(leads.Lead{Name: "Grace"}, 9)
	assert.Contains(t, prompt, "\nLastMessage: \n")
}

func TestFallbackMessage(t *testing.T) {
	assert.Equal(t, "Hi Ada, following up on our last chat. Are you available this week?", FallbackMessage("Ada"))
}
