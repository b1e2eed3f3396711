package analytics

import (
	"strings"
	"time"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

const (
	InsightWindowDays = 30
	RecentWindowDays  = 7

	// anxiousShare is the fraction of entries above which anxiety is called out.
	anxiousShare = 0.3
)

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

type Insights struct {
	Insights        []string
	Recommendations []string
}

// LastDays returns the entries from the n days ending today.
func LastDays(entries []*mood.MoodEntry, today time.Time, n int) []*mood.MoodEntry {
	today = mood.Day(today)
	return Filter(entries, today.AddDate(0, 0, 1-n), today)
}

// anxiousWeekdays lists the weekdays, Monday first, with at least two
// anxious entries.
func anxiousWeekdays(entries []*mood.MoodEntry) []string {
	perDay := make(map[time.Weekday]int)
	for _, e := range entries {
		if e.Mood == mood.MoodAnxious {
			perDay[mood.Day(e.Date).Weekday()]++
		}
	}
	var out []string
	for _, d := range weekOrder {
		if perDay[d] >= 2 {
			out = append(out, strings.ToLower(d.String()))
		}
	}
	return out
}

func anxiousAbove(entries []*mood.MoodEntry) bool {
	return float64(countMood(entries, mood.MoodAnxious)) > float64(len(entries))*anxiousShare
}

// ComputeInsights looks at the last 30 days.
func ComputeInsights(entries []*mood.MoodEntry, today time.Time) Insights {
	recent := LastDays(entries, today, InsightWindowDays)
	out := Insights{Insights: []string{}, Recommendations: []string{}}

	for _, day := range anxiousWeekdays(recent) {
		out.Insights = append(out.Insights, "You tend to feel anxious on "+day+"s")
		out.Recommendations = append(out.Recommendations, "Consider planning relaxing activities for "+day+"s")
	}
	if countMood(recent, mood.MoodSad) > countMood(recent, mood.MoodHappy) {
		out.Insights = append(out.Insights, "You've had more sad days than happy days recently")
		out.Recommendations = append(out.Recommendations, "Try to engage in activities that bring you joy")
	}
	if len(recent) > 0 && anxiousAbove(recent) {
		out.Insights = append(out.Insights, "You've been feeling anxious frequently")
		out.Recommendations = append(out.Recommendations, "Consider practicing mindfulness or meditation")
	}
	return out
}

var generalGoalSuggestions = []string{
	"Maintain a 7-day happy streak",
	"Log your mood consistently for 30 days",
	"Reduce anxious days by 50% this month",
}

// GoalSuggestions derives goal ideas from the last 30 days and appends the
// general suggestions.
func GoalSuggestions(entries []*mood.MoodEntry, today time.Time) []string {
	recent := LastDays(entries, today, InsightWindowDays)

	var out []string
	for _, day := range anxiousWeekdays(recent) {
		out = append(out, "Reduce anxious days on "+day+"s")
	}
	if countMood(recent, mood.MoodSad) > countMood(recent, mood.MoodHappy) {
		out = append(out, "Increase happy days to improve overall mood balance")
	}
	return append(out, generalGoalSuggestions...)
}
