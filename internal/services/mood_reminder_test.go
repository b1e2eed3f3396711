package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/pkg/pointers"
	"github.com/yungbote/moodtracker-backend/internal/platform/validate"
)

func newReminderService(env *testEnv) MoodReminderService {
	return NewMoodReminderService(env.tx, env.log, env.reminders, env.prefs, env.dismissals, env.entries, env.clock)
}

func TestMoodReminderDailyTrigger(t *testing.T) {
	env := newTestEnv(t, "reminder-daily@example.com")
	svc := newReminderService(env)

	due, err := svc.TriggerDaily(env.ctx)
	require.NoError(t, err)
	assert.True(t, due.Due)
	assert.Equal(t, analytics.DailyReminderMessage(nil), due.Message)

	env.seed(t, testutil.Date(2024, 3, 12), types.MoodSad)
	due, err = svc.TriggerDaily(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, analytics.DailyReminderMessage(pointers.Ptr(types.MoodSad)), due.Message)

	require.NoError(t, svc.Dismiss(env.ctx))
	require.NoError(t, svc.Dismiss(env.ctx))
	due, err = svc.TriggerDaily(env.ctx)
	require.NoError(t, err)
	assert.False(t, due.Due)
	assert.Empty(t, due.Message)

	require.NoError(t, svc.MarkCompleted(env.ctx))
	due, err = svc.TriggerDaily(env.ctx)
	require.NoError(t, err)
	assert.True(t, due.Due)

	env.seed(t, testutil.Date(2024, 3, 13), types.MoodHappy)
	due, err = svc.TriggerDaily(env.ctx)
	require.NoError(t, err)
	assert.False(t, due.Due)
}

func TestMoodReminderCRUD(t *testing.T) {
	env := newTestEnv(t, "reminder-crud@example.com")
	svc := newReminderService(env)

	r, err := svc.Create(env.ctx, ReminderInput{Type: "daily", ReminderTime: "08:30"})
	require.NoError(t, err)
	assert.True(t, r.Enabled)
	assert.Equal(t, "DAILY", r.Type)
	assert.Equal(t, "08:30:00", r.ReminderTime.String())

	_, err = svc.Create(env.ctx, ReminderInput{Type: "DAILY", ReminderTime: "8.30pm"})
	requireAPIError(t, err, http.StatusBadRequest, validate.Code)

	require.NoError(t, svc.SetEnabled(env.ctx, r.ID, false))
	list, err := svc.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Enabled)

	requireAPIError(t, svc.SetEnabled(env.ctx, uuid.New(), true), http.StatusNotFound, "not_found")
}

func TestMoodReminderPreferences(t *testing.T) {
	env := newTestEnv(t, "reminder-prefs@example.com")
	svc := newReminderService(env)

	prefs, err := svc.GetPreferences(env.ctx)
	require.NoError(t, err)
	assert.True(t, prefs.DailyReminderEnabled)
	assert.Equal(t, mood.DefaultWeeklySummaryDay, prefs.WeeklySummaryDay)

	stored, err := env.prefs.GetByUserID(dbctxOf(env.ctx), env.user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	enabled, err := svc.RemindersEnabled(env.ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	msg, err := svc.CustomMessage(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, mood.DefaultCustomMessage, msg)

	weekly, err := svc.IsTimeForWeeklySummary(env.ctx)
	require.NoError(t, err)
	assert.False(t, weekly)

	saved, err := svc.UpdatePreferences(env.ctx, PreferencesInput{
		WeeklySummaryEnabled: true,
		WeeklySummaryDay:     "wednesday",
		DailyReminderTime:    "20:15",
		CustomMessage:        pointers.Ptr("How was today?"),
	})
	require.NoError(t, err)
	assert.Equal(t, "WEDNESDAY", saved.WeeklySummaryDay)
	assert.Equal(t, mood.DefaultNotificationType, saved.NotificationType)

	weekly, err = svc.IsTimeForWeeklySummary(env.ctx)
	require.NoError(t, err)
	assert.True(t, weekly)

	msg, err = svc.CustomMessage(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "How was today?", msg)

	saved, err = svc.UpdatePreferences(env.ctx, PreferencesInput{})
	require.NoError(t, err)
	assert.False(t, saved.DailyReminderEnabled)
	assert.False(t, saved.WeeklySummaryEnabled)

	enabled, err = svc.RemindersEnabled(env.ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = svc.UpdatePreferences(env.ctx, PreferencesInput{WeeklySummaryDay: "someday"})
	requireAPIError(t, err, http.StatusBadRequest, validate.Code)
}

func TestMoodReminderSummaries(t *testing.T) {
	env := newTestEnv(t, "reminder-summary@example.com")
	svc := newReminderService(env)

	msg, err := svc.MotivationalMessage(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, analytics.MotivationalMessage(nil, testNow), msg)

	env.seed(t, testutil.Date(2024, 3, 11), types.MoodHappy, types.MoodHappy, types.MoodHappy)

	reached, err := svc.HasReachedStreakTarget(env.ctx, 3)
	require.NoError(t, err)
	assert.True(t, reached)
	reached, err = svc.HasReachedStreakTarget(env.ctx, 4)
	require.NoError(t, err)
	assert.False(t, reached)

	summary, err := svc.WeeklySummary(env.ctx)
	require.NoError(t, err)
	assert.Contains(t, summary, "Happy days: 3, Sad days: 0, Anxious days: 0.")
}
