package app

import (
	"gorm.io/gorm"

	apphttp "github.com/yungbote/moodtracker-backend/internal/http"
	httpH "github.com/yungbote/moodtracker-backend/internal/http/handlers"
	httpMW "github.com/yungbote/moodtracker-backend/internal/http/middleware"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	MoodEntry  *httpH.MoodEntryHandler
	Statistics *httpH.StatisticsHandler
	Analytics  *httpH.AnalyticsHandler
	Goal       *httpH.GoalHandler
	Reminder   *httpH.ReminderHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Auth:       httpH.NewAuthHandler(services.Auth),
		User:       httpH.NewUserHandler(services.User),
		MoodEntry:  httpH.NewMoodEntryHandler(services.MoodEntry),
		Statistics: httpH.NewStatisticsHandler(services.MoodEntry),
		Analytics:  httpH.NewAnalyticsHandler(services.MoodAnalytics),
		Goal:       httpH.NewGoalHandler(services.MoodGoal),
		Reminder:   httpH.NewReminderHandler(services.MoodReminder),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		TracingEnabled:    cfg.Otel.Enabled,
		ServiceName:       cfg.Otel.ServiceName,
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlers.User,
		MoodEntryHandler:  handlers.MoodEntry,
		StatisticsHandler: handlers.Statistics,
		AnalyticsHandler:  handlers.Analytics,
		GoalHandler:       handlers.Goal,
		ReminderHandler:   handlers.Reminder,
	}
}
