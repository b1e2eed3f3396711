package analytics

import (
	"time"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seq builds entries on consecutive days starting at start.
func seq(start time.Time, moods ...mood.MoodType) []*mood.MoodEntry {
	out := make([]*mood.MoodEntry, 0, len(moods))
	for i, m := range moods {
		out = append(out, &mood.MoodEntry{Date: start.AddDate(0, 0, i), Mood: m})
	}
	return out
}

func entry(d time.Time, m mood.MoodType) *mood.MoodEntry {
	return &mood.MoodEntry{Date: d, Mood: m}
}
