package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

type TrendDataPoint struct {
	Date      time.Time
	DayNumber int
	Mood      *mood.MoodType
	Score     *int
}

type Trend struct {
	Period     string
	TotalDays  int
	StartDate  time.Time
	EndDate    time.Time
	DataPoints []TrendDataPoint
}

// TrendWindow lays out one point per day for the days ending at end. Days
// without an entry carry no mood.
func TrendWindow(entries []*mood.MoodEntry, end time.Time, days int) Trend {
	end = mood.Day(end)
	if days < 0 {
		days = 0
	}
	start := end.AddDate(0, 0, 1-days)
	t := Trend{
		Period:     fmt.Sprintf("last_%d_days", days),
		TotalDays:  days,
		StartDate:  start,
		EndDate:    end,
		DataPoints: make([]TrendDataPoint, 0, days),
	}
	if days == 0 {
		return t
	}

	byDay := make(map[time.Time]mood.MoodType)
	for _, e := range Filter(entries, start, end) {
		byDay[mood.Day(e.Date)] = e.Mood
	}
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		p := TrendDataPoint{Date: day, DayNumber: i + 1}
		if m, ok := byDay[day]; ok {
			m := m
			score := m.Score()
			p.Mood, p.Score = &m, &score
		}
		t.DataPoints = append(t.DataPoints, p)
	}
	return t
}

type MonthlyStatistics struct {
	Period         string
	StartDate      time.Time
	EndDate        time.Time
	TotalEntries   int
	Counts         map[mood.MoodType]int
	MostCommonMood mood.MoodType
}

func (s MonthlyStatistics) Count(m mood.MoodType) int { return s.Counts[m] }

// Monthly summarises the calendar month named by a YYYY-MM string. Counts
// carries every mood, zero included.
func Monthly(entries []*mood.MoodEntry, month string) (MonthlyStatistics, error) {
	first, last, err := mood.ParseMonth(month)
	if err != nil {
		return MonthlyStatistics{}, err
	}
	inMonth := Filter(entries, first, last)

	counts := make(map[mood.MoodType]int, len(mood.AllMoods))
	for _, m := range mood.AllMoods {
		counts[m] = 0
	}
	for m, c := range Counts(inMonth) {
		counts[m] = c
	}
	common, _ := MostFrequent(counts)
	return MonthlyStatistics{
		Period:         first.Format(mood.MonthLayout),
		StartDate:      first,
		EndDate:        last,
		TotalEntries:   len(inMonth),
		Counts:         counts,
		MostCommonMood: common,
	}, nil
}

type Comparison struct {
	PercentageChanges map[string]float64
	Period1           MonthlyStatistics
	Period2           MonthlyStatistics
	Improvement       bool
}

// Compare measures happy, sad and anxious changes relative to the first
// period's total. Changes are omitted when the first period is empty.
func Compare(p1, p2 MonthlyStatistics) Comparison {
	c := Comparison{
		PercentageChanges: map[string]float64{},
		Period1:           p1,
		Period2:           p2,
		Improvement: p2.Count(mood.MoodHappy) > p1.Count(mood.MoodHappy) &&
			p2.Count(mood.MoodSad) < p1.Count(mood.MoodSad),
	}
	if p1.TotalEntries > 0 {
		change := func(m mood.MoodType) float64 {
			return round2(float64(p2.Count(m)-p1.Count(m)) / float64(p1.TotalEntries) * 100)
		}
		c.PercentageChanges["happy_change"] = change(mood.MoodHappy)
		c.PercentageChanges["sad_change"] = change(mood.MoodSad)
		c.PercentageChanges["anxious_change"] = change(mood.MoodAnxious)
	}
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
