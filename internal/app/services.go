package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	User          services.UserService
	MoodEntry     services.MoodEntryService
	MoodAnalytics services.MoodAnalyticsService
	MoodGoal      services.MoodGoalService
	MoodReminder  services.MoodReminderService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	clock := services.SystemClock(cfg.Location)
	return Services{
		Auth: services.NewAuthService(
			db,
			log,
			r.User,
			r.UserToken,
			cfg.JWTSecretKey,
			cfg.AccessTokenTTL,
			cfg.RefreshTokenTTL,
			clock,
		),
		User:          services.NewUserService(db, log, r.User),
		MoodEntry:     services.NewMoodEntryService(db, log, r.MoodEntry, clock),
		MoodAnalytics: services.NewMoodAnalyticsService(db, log, r.MoodEntry, clock),
		MoodGoal: services.NewMoodGoalService(
			db,
			log,
			r.MoodGoal,
			r.GoalAchievement,
			r.MoodEntry,
			clock,
		),
		MoodReminder: services.NewMoodReminderService(
			db,
			log,
			r.MoodReminder,
			r.ReminderPreferences,
			r.ReminderDismissal,
			r.MoodEntry,
			clock,
		),
	}
}
