package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type Repos struct {
	User                repos.UserRepo
	UserToken           repos.UserTokenRepo
	MoodEntry           repos.MoodEntryRepo
	MoodGoal            repos.MoodGoalRepo
	GoalAchievement     repos.GoalAchievementRepo
	MoodReminder        repos.MoodReminderRepo
	ReminderPreferences repos.ReminderPreferencesRepo
	ReminderDismissal   repos.ReminderDismissalRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                repos.NewUserRepo(db, log),
		UserToken:           repos.NewUserTokenRepo(db, log),
		MoodEntry:           repos.NewMoodEntryRepo(db, log),
		MoodGoal:            repos.NewMoodGoalRepo(db, log),
		GoalAchievement:     repos.NewGoalAchievementRepo(db, log),
		MoodReminder:        repos.NewMoodReminderRepo(db, log),
		ReminderPreferences: repos.NewReminderPreferencesRepo(db, log),
		ReminderDismissal:   repos.NewReminderDismissalRepo(db, log),
	}
}
