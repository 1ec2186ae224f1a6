package leads

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `Name,Phone,LastMessage,LastContactDate,Owner
Ada Lovelace,+1 (555) 123-4567,"Send me the pricing, please",2024-05-01,sam
Grace Hopper,15550001111,,2024-05-03 14:30:00,sam
Broken Row,15550002222,hello,not-a-date,kim
`

func TestRead_ParsesRows(t *testing.T) {
	got, err := Read(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Row)
	assert.Equal(t, "Ada Lovelace", got[0].Name)
	assert.Equal(t, "+1 (555) 123-4567", got[0].Phone)
	assert.Equal(t, "Send me the pricing, please", got[0].LastMessage)
	require.True(t, got[0].HasLastContact())
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *got[0].LastContact)

	assert.Empty(t, got[1].LastMessage)
	require.NotNil(t, got[1].LastContact)
	assert.Equal(t, 14, got[1].LastContact.Hour())

	assert.False(t, got[2].HasLastContact())
	assert.Equal(t, "not-a-date", got[2].RawLastContact)
	assert.Equal(t, 3, got[2].Row)
}

func TestRead_LastMessageColumnOptional(t *testing.T) {
	got, err := Read(strings.NewReader("Phone,Name,LastContactDate\n555,Ada,2024-01-02\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, "555", got[0].Phone)
	assert.Empty(t, got[0].LastMessage)
}

func TestRead_HeaderWithBOMAndPadding(t *testing.T) {
	got, err := Read(strings.NewReader("\ufeffName , Phone,LastMessage,LastContactDate\nAda,555,hi,2024-01-02\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].Name)
}

func TestRead_MissingColumns(t *testing.T) {
	_, err := Read(strings.NewReader("Name,Phone\nAda,555\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), ColumnLastContactDate)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRead_SkipsBlankAndShortRows(t *testing.T) {
	input := "Name,Phone,LastMessage,LastContactDate\n,,,\nAda,555\n"
	got, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].Name)
	assert.False(t, got[0].HasLastContact())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestParseContactDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-05-01", true, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05-01T09:15:00Z", true, time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC)},
		{"2024-05-01T09:15:00", true, time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC)},
		{"2024/05/01", true, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"05/01/2024", true, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"05/01/2024 17:45", true, time.Date(2024, 5, 1, 17, 45, 0, 0, time.UTC)},
		{"5/1/2024", true, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"5/1/2024 14:30", true, time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)},
		{"12/3/2024", true, time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)},
		{"12/3/2024 9:05:30", true, time.Date(2024, 12, 3, 9, 5, 30, 0, time.UTC)},
		{"2024-05-01 10:00:00+00:00", true, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-05-01 10:00:00-04:00", true, time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)},
		{"2024-05-01 10:00:00.250000+00:00", true, time.Date(2024, 5, 1, 10, 0, 0, 250000000, time.UTC)},
		{" 2024-05-01 ", true, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"NaN", false, time.Time{}},
		{"NaT", false, time.Time{}},
		{"yesterday", false, time.Time{}},
		{"2024-13-45", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseContactDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada", Lead{Name: " Ada "}.DisplayName())
	assert.Equal(t, "row 7", Lead{Row: 7}.DisplayName())
}
