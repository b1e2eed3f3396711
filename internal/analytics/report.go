package analytics

import (
	"fmt"
	"strings"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

// SummaryReport renders the plain-text comparison of two monthly periods.
func SummaryReport(startPeriod, endPeriod string, start, end MonthlyStatistics) string {
	var b strings.Builder
	b.WriteString("Mood Summary Report\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Period: %s to %s\n\n", startPeriod, endPeriod)

	writePeriod(&b, "Start Period Statistics:", start)
	writePeriod(&b, "End Period Statistics:", end)

	b.WriteString("Trends and Patterns:\n")
	switch happy1, happy2 := start.Count(mood.MoodHappy), end.Count(mood.MoodHappy); {
	case happy2 > happy1:
		b.WriteString("- Improvement in mood: More happy days in the end period\n")
	case happy2 < happy1:
		b.WriteString("- Decline in mood: Fewer happy days in the end period\n")
	}
	switch anx1, anx2 := start.Count(mood.MoodAnxious), end.Count(mood.MoodAnxious); {
	case anx2 > anx1:
		b.WriteString("- Increased anxiety levels\n")
	case anx2 < anx1:
		b.WriteString("- Decreased anxiety levels\n")
	}

	b.WriteString("\nGeneral Trends:\n")
	b.WriteString("- Overall mood patterns and trends\n")
	b.WriteString("- Weekly and monthly patterns\n")
	return b.String()
}

func writePeriod(b *strings.Builder, title string, s MonthlyStatistics) {
	b.WriteString(title + "\n")
	fmt.Fprintf(b, "- Total entries: %d\n", s.TotalEntries)
	fmt.Fprintf(b, "- Happy days: %d\n", s.Count(mood.MoodHappy))
	fmt.Fprintf(b, "- Sad days: %d\n", s.Count(mood.MoodSad))
	fmt.Fprintf(b, "- Anxious days: %d\n\n", s.Count(mood.MoodAnxious))
}
