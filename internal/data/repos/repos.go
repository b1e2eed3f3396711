package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/data/repos/auth"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/mood"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/user"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type MoodEntryRepo = mood.MoodEntryRepo
type MoodGoalRepo = mood.MoodGoalRepo
type GoalAchievementRepo = mood.GoalAchievementRepo
type MoodReminderRepo = mood.MoodReminderRepo
type ReminderPreferencesRepo = mood.ReminderPreferencesRepo
type ReminderDismissalRepo = mood.ReminderDismissalRepo

type PageRequest = mood.PageRequest
type Sort = mood.Sort

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	return mood.NewMoodEntryRepo(db, baseLog)
}
func NewMoodGoalRepo(db *gorm.DB, baseLog *logger.Logger) MoodGoalRepo {
	return mood.NewMoodGoalRepo(db, baseLog)
}
func NewGoalAchievementRepo(db *gorm.DB, baseLog *logger.Logger) GoalAchievementRepo {
	return mood.NewGoalAchievementRepo(db, baseLog)
}
func NewMoodReminderRepo(db *gorm.DB, baseLog *logger.Logger) MoodReminderRepo {
	return mood.NewMoodReminderRepo(db, baseLog)
}
func NewReminderPreferencesRepo(db *gorm.DB, baseLog *logger.Logger) ReminderPreferencesRepo {
	return mood.NewReminderPreferencesRepo(db, baseLog)
}
func NewReminderDismissalRepo(db *gorm.DB, baseLog *logger.Logger) ReminderDismissalRepo {
	return mood.NewReminderDismissalRepo(db, baseLog)
}
