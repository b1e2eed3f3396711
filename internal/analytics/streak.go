package analytics

import (
	"time"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

// Run is a maximal sequence of entries with the same mood on consecutive
// calendar days.
type Run struct {
	Mood   mood.MoodType
	Start  time.Time
	End    time.Time
	Length int
}

// Runs splits entries into runs. A date gap or a mood change ends a run.
func Runs(entries []*mood.MoodEntry) []Run {
	sorted := make([]*mood.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	SortByDate(sorted)

	var runs []Run
	for _, e := range sorted {
		day := mood.Day(e.Date)
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Mood == e.Mood && day.Equal(last.End.AddDate(0, 0, 1)) {
				last.End = day
				last.Length++
				continue
			}
		}
		runs = append(runs, Run{Mood: e.Mood, Start: day, End: day, Length: 1})
	}
	return runs
}

// currentRun is the last run when it ends today or yesterday.
func currentRun(runs []Run, today time.Time) (Run, bool) {
	if len(runs) == 0 {
		return Run{}, false
	}
	today = mood.Day(today)
	last := runs[len(runs)-1]
	if last.End.Equal(today) || last.End.Equal(today.AddDate(0, 0, -1)) {
		return last, true
	}
	return Run{}, false
}

// longestRun keeps the earliest run on ties.
func longestRun(runs []Run) (Run, bool) {
	var best Run
	found := false
	for _, r := range runs {
		if !found || r.Length > best.Length {
			best, found = r, true
		}
	}
	return best, found
}

// CurrentStreak returns the length and mood of the current streak, or 0 and ""
// when the latest entry is older than yesterday.
func CurrentStreak(entries []*mood.MoodEntry, today time.Time) (int, mood.MoodType) {
	if r, ok := currentRun(Runs(entries), today); ok {
		return r.Length, r.Mood
	}
	return 0, ""
}

func LongestStreak(entries []*mood.MoodEntry) (int, mood.MoodType) {
	if r, ok := longestRun(Runs(entries)); ok {
		return r.Length, r.Mood
	}
	return 0, ""
}

// CurrentStreakFor is the current streak when its mood is m, otherwise 0.
func CurrentStreakFor(entries []*mood.MoodEntry, m mood.MoodType, today time.Time) int {
	n, cur := CurrentStreak(entries, today)
	if cur != m {
		return 0
	}
	return n
}

func LongestStreakFor(entries []*mood.MoodEntry, m mood.MoodType) int {
	best := 0
	for _, r := range Runs(entries) {
		if r.Mood == m && r.Length > best {
			best = r.Length
		}
	}
	return best
}

type MoodStreak struct {
	Mood    mood.MoodType
	Current int
	Longest int
}

// StreakSummary reports current and longest streaks for every mood, in
// declaration order.
func StreakSummary(entries []*mood.MoodEntry, today time.Time) []MoodStreak {
	runs := Runs(entries)
	cur, hasCur := currentRun(runs, today)

	out := make([]MoodStreak, 0, len(mood.AllMoods))
	for _, m := range mood.AllMoods {
		s := MoodStreak{Mood: m}
		if hasCur && cur.Mood == m {
			s.Current = cur.Length
		}
		for _, r := range runs {
			if r.Mood == m && r.Length > s.Longest {
				s.Longest = r.Length
			}
		}
		out = append(out, s)
	}
	return out
}
