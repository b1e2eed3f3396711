package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

func TestDailyReminderMessage(t *testing.T) {
	sad, happy := mood.MoodSad, mood.MoodHappy
	assert.Equal(t, dailyReminderAfterLowDay, DailyReminderMessage(&sad))
	assert.Equal(t, dailyReminderDefault, DailyReminderMessage(&happy))
	assert.Equal(t, dailyReminderDefault, DailyReminderMessage(nil))
}

func TestWeeklySummary(t *testing.T) {
	today := day(2024, 1, 14)
	assert.Equal(t, weeklySummaryEmpty, WeeklySummary(nil, today))

	entries := seq(day(2024, 1, 8), mood.MoodHappy, mood.MoodHappy, mood.MoodSad, mood.MoodAnxious)
	assert.Equal(t,
		"Weekly Summary: Happy days: 2, Sad days: 1, Anxious days: 1. Great week! Keep up the positive energy!",
		WeeklySummary(entries, today))

	entries = seq(day(2024, 1, 12), mood.MoodSad, mood.MoodHappy)
	assert.Equal(t,
		"Weekly Summary: Happy days: 1, Sad days: 1, Anxious days: 0. Balanced week. Keep tracking your moods!",
		WeeklySummary(entries, today))

	// Entries older than seven days do not count.
	assert.Equal(t, weeklySummaryEmpty, WeeklySummary(seq(day(2024, 1, 1), mood.MoodSad), today))
}

func TestMotivationalMessage(t *testing.T) {
	today := day(2024, 1, 14)
	assert.Equal(t, motivationEmpty, MotivationalMessage(nil, today))
	assert.Equal(t, motivationSad, MotivationalMessage(seq(day(2024, 1, 13), mood.MoodSad, mood.MoodNeutral), today))
	assert.Equal(t, motivationAnxious, MotivationalMessage(seq(day(2024, 1, 12), mood.MoodAnxious, mood.MoodNeutral, mood.MoodHappy), today))
	assert.Equal(t, motivationDefault, MotivationalMessage(seq(day(2024, 1, 12), mood.MoodHappy, mood.MoodNeutral, mood.MoodHappy), today))
}

func TestGoalReminderAndShareMessages(t *testing.T) {
	p := GoalProgress{GoalID: uuid.New(), GoalType: mood.GoalHappyDays, Target: 5, Completed: 2}
	assert.Equal(t, "You're 3 away from your goal! Keep logging your moods to achieve it!", GoalReminderMessage(p))

	p.Completed = 5
	assert.Equal(t, "Great job! You're on track with your goals!", GoalReminderMessage(p))
	assert.Equal(t, "Great job! You're on track with your goals!", GoalReminderMessage(GoalProgress{}))

	assert.Equal(t,
		"I just achieved my mood goal in Daily Mood Tracker! Completed 5/5 HAPPY_DAYS. Total achievement points: 50. Track your mood and set goals too!",
		ShareMessage(p, 50))
}
