package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/moodtracker-backend/internal/http/handlers"
	httpMW "github.com/yungbote/moodtracker-backend/internal/http/middleware"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	CORSOrigins    []string
	TracingEnabled bool
	ServiceName    string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	MoodEntryHandler  *httpH.MoodEntryHandler
	StatisticsHandler *httpH.StatisticsHandler
	AnalyticsHandler  *httpH.AnalyticsHandler
	GoalHandler       *httpH.GoalHandler
	ReminderHandler   *httpH.ReminderHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, "/healthcheck", "/metrics"))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateName)
		}

		// Mood entries
		if h := cfg.MoodEntryHandler; h != nil {
			protected.POST("/mood-entries", h.Create)
			protected.GET("/mood-entries", h.List)
			protected.GET("/mood-entries/by-date", h.ByDate)
			protected.GET("/mood-entries/range", h.Range)
			protected.GET("/mood-entries/:id", h.Get)
			protected.PUT("/mood-entries/:id", h.Update)
			protected.PATCH("/mood-entries/:id", h.PartialUpdate)
			protected.DELETE("/mood-entries/:id", h.Delete)
		}

		// Statistics
		if h := cfg.StatisticsHandler; h != nil {
			protected.GET("/mood-statistics", h.Range)
			protected.GET("/mood-statistics/current-month", h.CurrentMonth)
			protected.GET("/mood-statistics/last-week", h.LastWeek)
		}

		// Analytics
		if h := cfg.AnalyticsHandler; h != nil {
			protected.GET("/mood-analytics/monthly", h.Monthly)
			protected.GET("/mood-analytics/trend", h.Trend)
			protected.GET("/mood-analytics/streaks", h.Streaks)
			protected.GET("/mood-analytics/export", h.Export)
			protected.GET("/mood-analytics/compare", h.Compare)
			protected.GET("/mood-analytics/insights", h.Insights)
			protected.GET("/mood-analytics/report", h.Report)
		}

		// Goals
		if h := cfg.GoalHandler; h != nil {
			protected.POST("/mood-goals", h.Create)
			protected.POST("/mood-goals/batch", h.CreateBatch)
			protected.GET("/mood-goals", h.List)
			protected.PATCH("/mood-goals/:id", h.Update)
			protected.GET("/mood-goals/progress", h.Progress)
			protected.POST("/mood-goals/check-achievement", h.CheckAchievement)
			protected.POST("/mood-goals/reminder", h.Reminder)
			protected.GET("/mood-goals/history", h.History)
			protected.GET("/mood-goals/suggestions", h.Suggestions)
			protected.GET("/mood-goals/share", h.Share)
			protected.GET("/mood-goals/streak-break", h.StreakBreak)
		}

		// Reminders
		if h := cfg.ReminderHandler; h != nil {
			protected.POST("/mood-reminders", h.Create)
			protected.GET("/mood-reminders", h.List)
			protected.PATCH("/mood-reminders/:id", h.SetEnabled)
			protected.POST("/mood-reminders/daily", h.TriggerDaily)
			protected.POST("/mood-reminders/dismiss", h.Dismiss)
			protected.POST("/mood-reminders/complete", h.Complete)
			protected.GET("/mood-reminders/preferences", h.GetPreferences)
			protected.PUT("/mood-reminders/preferences", h.UpdatePreferences)
			protected.GET("/mood-reminders/enabled", h.Enabled)
			protected.GET("/mood-reminders/custom-message", h.CustomMessage)
			protected.GET("/mood-reminders/weekly-summary/due", h.WeeklySummaryDue)
			protected.GET("/mood-reminders/weekly-summary", h.WeeklySummary)
			protected.GET("/mood-reminders/streak-target", h.StreakTarget)
			protected.GET("/mood-reminders/motivation", h.Motivation)
		}
	}

	return r
}
