package analytics

import (
	"fmt"
	"time"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

const (
	dailyReminderDefault     = "Time to log your mood! How are you feeling today?"
	dailyReminderAfterLowDay = "Time to check in with yourself! Yesterday was challenging, but today is a new day. How are you feeling today?"

	weeklySummaryEmpty = "Weekly Summary: No mood entries this week. Don't forget to log your moods!"

	motivationEmpty   = "Every journey begins with a single step. Start tracking your mood today!"
	motivationSad     = "Remember, difficult times are temporary. You're stronger than you think. Take a moment to breathe and be kind to yourself."
	motivationAnxious = "It's normal to feel anxious. Try some deep breathing exercises or take a short walk. You're doing great!"
	motivationDefault = "You're making progress! Keep up the great work with your mood tracking."

	StreakBreakMessage = "Don't worry! Every streak starts with a single day. You can start a new happy streak today!"
)

// DailyReminderMessage picks the reminder text given yesterday's mood, if any.
func DailyReminderMessage(yesterday *mood.MoodType) string {
	if yesterday != nil && (*yesterday == mood.MoodSad || *yesterday == mood.MoodAnxious) {
		return dailyReminderAfterLowDay
	}
	return dailyReminderDefault
}

// WeeklySummary describes the last 7 days ending today.
func WeeklySummary(entries []*mood.MoodEntry, today time.Time) string {
	week := LastDays(entries, today, RecentWindowDays)
	if len(week) == 0 {
		return weeklySummaryEmpty
	}
	happy := countMood(week, mood.MoodHappy)
	sad := countMood(week, mood.MoodSad)
	anxious := countMood(week, mood.MoodAnxious)

	summary := fmt.Sprintf("Weekly Summary: Happy days: %d, Sad days: %d, Anxious days: %d. ", happy, sad, anxious)
	switch {
	case happy > sad:
		return summary + "Great week! Keep up the positive energy!"
	case sad > happy:
		return summary + "It's been a challenging week. Remember, it's okay to not be okay."
	default:
		return summary + "Balanced week. Keep tracking your moods!"
	}
}

// MotivationalMessage reacts to the last 7 days ending today.
func MotivationalMessage(entries []*mood.MoodEntry, today time.Time) string {
	recent := LastDays(entries, today, RecentWindowDays)
	switch {
	case len(recent) == 0:
		return motivationEmpty
	case countMood(recent, mood.MoodSad) > countMood(recent, mood.MoodHappy):
		return motivationSad
	case anxiousAbove(recent):
		return motivationAnxious
	default:
		return motivationDefault
	}
}

// GoalReminderMessage nudges toward the remaining distance of a goal.
func GoalReminderMessage(p GoalProgress) string {
	if remaining := p.Target - p.Completed; p.HasGoal() && remaining > 0 {
		return fmt.Sprintf("You're %d away from your goal! Keep logging your moods to achieve it!", remaining)
	}
	return "Great job! You're on track with your goals!"
}

func ShareMessage(p GoalProgress, totalPoints int) string {
	return fmt.Sprintf(
		"I just achieved my mood goal in Daily Mood Tracker! Completed %d/%d %s. Total achievement points: %d. Track your mood and set goals too!",
		p.Completed,
		p.Target,
		p.GoalType,
		totalPoints,
	)
}
