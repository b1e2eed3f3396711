package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

const MaxTrendDays = 366

type MoodAnalyticsService interface {
	MonthlyStatistics(ctx context.Context, month string) (analytics.MonthlyStatistics, error)
	TrendForLastDays(ctx context.Context, days int) (analytics.Trend, error)
	StreakInformation(ctx context.Context) ([]analytics.MoodStreak, error)
	ExportMonth(ctx context.Context, month string) (string, error)
	ComparePatterns(ctx context.Context, period1, period2 string) (analytics.Comparison, error)
	Insights(ctx context.Context) (analytics.Insights, error)
	SummaryReport(ctx context.Context, startPeriod, endPeriod string) (string, error)
}

type moodAnalyticsService struct {
	db        *gorm.DB
	log       *logger.Logger
	entryRepo repos.MoodEntryRepo
	clock     Clock
}

func NewMoodAnalyticsService(db *gorm.DB, log *logger.Logger, entryRepo repos.MoodEntryRepo, clock Clock) MoodAnalyticsService {
	serviceLog := log.With("service", "MoodAnalyticsService")
	return &moodAnalyticsService{
		db:        db,
		log:       serviceLog,
		entryRepo: entryRepo,
		clock:     clock,
	}
}

func invalidMonth(err error) error {
	return apierr.BadRequest("invalid_month", err)
}

func (s *moodAnalyticsService) monthEntries(ctx context.Context, userID uuid.UUID, month string) (analytics.MonthlyStatistics, []*types.MoodEntry, error) {
	first, last, err := mood.ParseMonth(month)
	if err != nil {
		return analytics.MonthlyStatistics{}, nil, invalidMonth(err)
	}
	entries, err := s.entryRepo.ListByUserBetween(dbctx.Context{Ctx: ctx}, userID, first, last)
	if err != nil {
		return analytics.MonthlyStatistics{}, nil, err
	}
	stats, err := analytics.Monthly(entries, month)
	if err != nil {
		return analytics.MonthlyStatistics{}, nil, invalidMonth(err)
	}
	return stats, entries, nil
}

func (s *moodAnalyticsService) MonthlyStatistics(ctx context.Context, month string) (analytics.MonthlyStatistics, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return analytics.MonthlyStatistics{}, err
	}
	stats, _, err := s.monthEntries(ctx, userID, month)
	return stats, err
}

func (s *moodAnalyticsService) TrendForLastDays(ctx context.Context, days int) (analytics.Trend, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return analytics.Trend{}, err
	}
	if days < 1 || days > MaxTrendDays {
		return analytics.Trend{}, apierr.Newf(http.StatusBadRequest, "invalid_days", "days must be between 1 and %d", MaxTrendDays)
	}
	today := s.clock.today()
	entries, err := s.entryRepo.ListByUserBetween(dbctx.Context{Ctx: ctx}, userID, today.AddDate(0, 0, 1-days), today)
	if err != nil {
		return analytics.Trend{}, err
	}
	return analytics.TrendWindow(entries, today, days), nil
}

func (s *moodAnalyticsService) StreakInformation(ctx context.Context) ([]analytics.MoodStreak, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, err
	}
	return analytics.StreakSummary(entries, s.clock.today()), nil
}

func (s *moodAnalyticsService) ExportMonth(ctx context.Context, month string) (string, error) {
	ctx, span := observability.StartSpan(ctx, "mood.export_month", attribute.String("month", month))
	defer span.End()
	userID, err := requireUserID(ctx)
	if err != nil {
		return "", err
	}
	_, entries, err := s.monthEntries(ctx, userID, month)
	if err != nil {
		return "", err
	}
	observability.Current().IncReport("csv")
	return analytics.ExportCSV(entries), nil
}

func (s *moodAnalyticsService) ComparePatterns(ctx context.Context, period1, period2 string) (analytics.Comparison, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return analytics.Comparison{}, err
	}
	p1, _, err := s.monthEntries(ctx, userID, period1)
	if err != nil {
		return analytics.Comparison{}, err
	}
	p2, _, err := s.monthEntries(ctx, userID, period2)
	if err != nil {
		return analytics.Comparison{}, err
	}
	return analytics.Compare(p1, p2), nil
}

func (s *moodAnalyticsService) Insights(ctx context.Context) (analytics.Insights, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return analytics.Insights{}, err
	}
	today := s.clock.today()
	entries, err := s.entryRepo.ListByUserBetween(dbctx.Context{Ctx: ctx}, userID,
		today.AddDate(0, 0, 1-analytics.InsightWindowDays), today)
	if err != nil {
		return analytics.Insights{}, err
	}
	return analytics.ComputeInsights(entries, today), nil
}

func (s *moodAnalyticsService) SummaryReport(ctx context.Context, startPeriod, endPeriod string) (string, error) {
	ctx, span := observability.StartSpan(ctx, "mood.summary_report",
		attribute.String("start_period", startPeriod),
		attribute.String("end_period", endPeriod),
	)
	defer span.End()
	userID, err := requireUserID(ctx)
	if err != nil {
		return "", err
	}
	start, _, err := s.monthEntries(ctx, userID, startPeriod)
	if err != nil {
		return "", err
	}
	end, _, err := s.monthEntries(ctx, userID, endPeriod)
	if err != nil {
		return "", err
	}
	observability.Current().IncReport("summary")
	return analytics.SummaryReport(startPeriod, endPeriod, start, end), nil
}
