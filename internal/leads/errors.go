package leads

import "errors"

var (
	// ErrFileNotFound is returned when the CRM export path does not exist
	ErrFileNotFound = errors.New("leads: crm file not found")

	// ErrMissingColumn is returned when the header lacks a required column
	ErrMissingColumn = errors.New("leads: required column missing")

	// ErrEmptyFile is returned when the export has no header row
	ErrEmptyFile = errors.New("leads: crm file is empty")
)
