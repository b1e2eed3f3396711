package domain

import (
	"github.com/yungbote/moodtracker-backend/internal/domain/auth"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/domain/user"
)

const (
	MoodHappy   = mood.MoodHappy
	MoodSad     = mood.MoodSad
	MoodAngry   = mood.MoodAngry
	MoodNeutral = mood.MoodNeutral
	MoodAnxious = mood.MoodAnxious

	GoalHappyDays = mood.GoalHappyDays
	GoalStreak    = mood.GoalStreak
	GoalCustom    = mood.GoalCustom
)

type User = user.User
type UserToken = auth.UserToken

type MoodType = mood.MoodType
type GoalType = mood.GoalType
type MoodEntry = mood.MoodEntry
type MoodGoal = mood.MoodGoal
type GoalAchievement = mood.GoalAchievement
type MoodReminder = mood.MoodReminder
type ReminderPreferences = mood.ReminderPreferences
type ReminderDismissal = mood.ReminderDismissal

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UserToken{},
		&MoodEntry{},
		&MoodGoal{},
		&GoalAchievement{},
		&MoodReminder{},
		&ReminderPreferences{},
		&ReminderDismissal{},
	}
}
