package analytics

import (
	"sort"
	"time"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

type TrendPoint struct {
	Date  time.Time
	Mood  mood.MoodType
	Score int
}

// Snapshot is the statistics view of a date range. It is derived on demand
// and never persisted.
type Snapshot struct {
	StartDate             time.Time
	EndDate               time.Time
	TotalEntries          int
	Distribution          map[mood.MoodType]int
	MostFrequentMood      mood.MoodType
	MostFrequentMoodCount int
	AverageScore          float64
	CurrentStreak         int
	CurrentStreakMood     mood.MoodType
	LongestStreak         int
	LongestStreakMood     mood.MoodType
	CompletionRate        float64
	Trends                []TrendPoint
}

// Compute builds the snapshot for [start, end]. Entries outside the range are
// ignored; today anchors the current streak.
func Compute(entries []*mood.MoodEntry, start, end, today time.Time) Snapshot {
	start, end = mood.Day(start), mood.Day(end)
	inRange := Filter(entries, start, end)

	snap := Snapshot{
		StartDate:    start,
		EndDate:      end,
		TotalEntries: len(inRange),
		Distribution: Counts(inRange),
		AverageScore: AverageScore(inRange),
		Trends:       make([]TrendPoint, 0, len(inRange)),
	}
	if len(inRange) == 0 {
		return snap
	}

	snap.MostFrequentMood, snap.MostFrequentMoodCount = MostFrequent(snap.Distribution)
	for _, e := range inRange {
		snap.Trends = append(snap.Trends, TrendPoint{Date: mood.Day(e.Date), Mood: e.Mood, Score: e.Mood.Score()})
	}

	runs := Runs(inRange)
	if cur, ok := currentRun(runs, today); ok {
		snap.CurrentStreak, snap.CurrentStreakMood = cur.Length, cur.Mood
	}
	if longest, ok := longestRun(runs); ok {
		snap.LongestStreak, snap.LongestStreakMood = longest.Length, longest.Mood
	}

	if days := mood.DaysInclusive(start, end); days > 0 {
		snap.CompletionRate = float64(len(inRange)) / float64(days) * 100
	}
	return snap
}

// Filter returns the entries dated within [start, end], sorted by date.
func Filter(entries []*mood.MoodEntry, start, end time.Time) []*mood.MoodEntry {
	start, end = mood.Day(start), mood.Day(end)
	out := make([]*mood.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		d := mood.Day(e.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, e)
	}
	SortByDate(out)
	return out
}

// SortByDate orders entries oldest first in place.
func SortByDate(entries []*mood.MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

// Counts groups entries by mood. Moods with no entries are absent.
func Counts(entries []*mood.MoodEntry) map[mood.MoodType]int {
	out := make(map[mood.MoodType]int)
	for _, e := range entries {
		if e == nil {
			continue
		}
		out[e.Mood]++
	}
	return out
}

// MostFrequent returns the mood with the highest count. Ties go to the mood
// declared first in AllMoods. It returns "" and 0 when counts is empty.
func MostFrequent(counts map[mood.MoodType]int) (mood.MoodType, int) {
	var best mood.MoodType
	bestCount := 0
	for _, m := range mood.AllMoods {
		if c := counts[m]; c > bestCount {
			best, bestCount = m, c
		}
	}
	return best, bestCount
}

// AverageScore is the mean mood score, 0 for no entries.
func AverageScore(entries []*mood.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		total += e.Mood.Score()
	}
	return float64(total) / float64(len(entries))
}

func countMood(entries []*mood.MoodEntry, m mood.MoodType) int {
	n := 0
	for _, e := range entries {
		if e != nil && e.Mood == m {
			n++
		}
	}
	return n
}
