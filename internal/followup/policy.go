// Package followup decides which leads are due for outreach and drives
// generation, delivery and audit logging for each one.
package followup

import (
	"time"

	"github.com/wolfman30/gtm-followup/internal/audit"
)

// Decision is the per-lead outcome of the recency policy.
type Decision int

const (
	// Skip means the lead was contacted recently enough.
	Skip Decision = iota
	// Send means a follow-up is due.
	Send
)

// String returns the label written to the audit log.
func (d Decision) String() string {
	if d == Send {
		return audit.DecisionFollowUp
	}
	return audit.DecisionSkip
}

// DaysSince counts whole calendar days from lastContact's date to today's UTC date.
// Both values are reduced to dates first, so time of day never matters.
func DaysSince(today, lastContact time.Time) int {
	t := today.UTC()
	end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(lastContact.Year(), lastContact.Month(), lastContact.Day(), 0, 0, 0, 0, time.UTC)
	return int((end.Unix() - start.Unix()) / 86400)
}

// Decide applies the threshold: contacted within thresholdDays (inclusive) means Skip.
func Decide(daysSince, thresholdDays int) Decision {
	if daysSince <= thresholdDays {
		return Skip
	}
	return Send
}
