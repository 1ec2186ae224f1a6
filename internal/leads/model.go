package leads

import (
	"strconv"
	"strings"
	"time"
)

// Lead is one row of the CRM export.
type Lead struct {
	Row            int        `json:"row"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	LastMessage    string     `json:"last_message"`
	LastContact    *time.Time `json:"last_contact,omitempty"`
	RawLastContact string     `json:"raw_last_contact"`
}

// HasLastContact reports whether the row carried a usable last-contact timestamp.
func (l Lead) HasLastContact() bool {
	return l.LastContact != nil
}

// DisplayName returns the lead name, or a row reference when the name cell is blank.
func (l Lead) DisplayName() string {
	if name := strings.TrimSpace(l.Name); name != "" {
		return name
	}
	return "row " + strconv.Itoa(l.Row)
}
