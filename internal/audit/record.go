// Package audit keeps the append-only record of every follow-up decision.
package audit

import (
	"context"
	"time"
)

// Decision labels written to the log.
const (
	DecisionSkip     = "Skip"
	DecisionFollowUp = "Follow-up"
)

// Header is the column order of the CSV log.
var Header = []string{
	"Name",
	"Phone",
	"Channel",
	"Decision",
	"ProviderMessageSid",
	"ProviderStatus",
	"LLMPrompt",
	"LLMOutput",
	"Timestamp",
}

// TimestampLayout renders timestamps as ISO-8601 in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Record is one processed lead. Records are never updated once written.
type Record struct {
	Name               string
	Phone              string
	Channel            string
	Decision           string
	ProviderMessageSID string
	ProviderStatus     string
	LLMPrompt          string
	LLMOutput          string
	Timestamp          time.Time
}

// Row renders the record in Header order.
func (r Record) Row() []string {
	return []string{
		r.Name,
		r.Phone,
		r.Channel,
		r.Decision,
		r.ProviderMessageSID,
		r.ProviderStatus,
		r.LLMPrompt,
		r.LLMOutput,
		r.Timestamp.UTC().Format(TimestampLayout),
	}
}

// Logger persists records in the order they are received.
type Logger interface {
	Log(ctx context.Context, rec Record) error
}
