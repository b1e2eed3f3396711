package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

func TestExportCSV(t *testing.T) {
	entries := []*mood.MoodEntry{
		entry(day(2024, 1, 2), mood.MoodSad),
		entry(day(2024, 1, 1), mood.MoodHappy),
	}
	assert.Equal(t, "date,mood\n2024-01-01,HAPPY\n2024-01-02,SAD\n", ExportCSV(entries))
	assert.Equal(t, "date,mood\n", ExportCSV(nil))
}

func TestCSVRoundTrip(t *testing.T) {
	entries := []*mood.MoodEntry{
		entry(day(2024, 3, 3), mood.MoodNeutral),
		entry(day(2024, 3, 1), mood.MoodAngry),
		entry(day(2024, 3, 2), mood.MoodAnxious),
	}

	parsed, err := ParseCSV(strings.NewReader(ExportCSV(entries)))
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	SortByDate(entries)
	for i := range entries {
		assert.True(t, entries[i].Date.Equal(parsed[i].Date))
		assert.Equal(t, entries[i].Mood, parsed[i].Mood)
	}
}

func TestParseCSVRejectsBadInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("when,feeling\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("date,mood\n2024-01-01,ELATED\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("date,mood\n01/02/2024,HAPPY\n"))
	assert.Error(t, err)
}
