package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

func streakCell(n int, m mood.MoodType) string {
	if n == 0 || m == "" {
		return "0"
	}
	return fmt.Sprintf("%d (%s)", n, m)
}

// writeStatsTable renders a snapshot as a metric/value table followed by the
// per-mood distribution.
func writeStatsTable(w io.Writer, snap analytics.Snapshot) error {
	summary := tablewriter.NewWriter(w)
	defer func() { _ = summary.Close() }()
	summary.Header([]string{"Metric", "Value"})
	summary.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	most := "-"
	if snap.MostFrequentMood != "" {
		most = fmt.Sprintf("%s (%d)", snap.MostFrequentMood, snap.MostFrequentMoodCount)
	}
	rows := [][]string{
		{"Range", mood.FormatDay(snap.StartDate) + " .. " + mood.FormatDay(snap.EndDate)},
		{"Total entries", strconv.Itoa(snap.TotalEntries)},
		{"Most frequent", most},
		{"Average score", strconv.FormatFloat(snap.AverageScore, 'f', 2, 64)},
		{"Current streak", streakCell(snap.CurrentStreak, snap.CurrentStreakMood)},
		{"Longest streak", streakCell(snap.LongestStreak, snap.LongestStreakMood)},
		{"Completion rate", strconv.FormatFloat(snap.CompletionRate, 'f', 1, 64) + "%"},
	}
	if err := summary.Bulk(rows); err != nil {
		return err
	}
	if err := summary.Render(); err != nil {
		return err
	}

	dist := tablewriter.NewWriter(w)
	defer func() { _ = dist.Close() }()
	dist.Header([]string{"Mood", "Count"})
	var counts [][]string
	for _, m := range mood.AllMoods {
		if n := snap.Distribution[m]; n > 0 {
			counts = append(counts, []string{m.String(), strconv.Itoa(n)})
		}
	}
	if err := dist.Bulk(counts); err != nil {
		return err
	}
	return dist.Render()
}
