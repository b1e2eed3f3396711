package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/platform/validate"
)

const clockLayout = "15:04"

type ReminderInput struct {
	Type         string `json:"type" validate:"required,oneof=DAILY WEEKLY STREAK CUSTOM"`
	ReminderTime string `json:"reminder_time" validate:"omitempty,datetime=15:04"`
	DayOfWeek    string `json:"day_of_week" validate:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StreakTarget int    `json:"streak_target" validate:"gte=0,lte=366"`
}

type PreferencesInput struct {
	DailyReminderEnabled bool    `json:"daily_reminder_enabled"`
	DailyReminderTime    string  `json:"daily_reminder_time" validate:"omitempty,datetime=15:04"`
	WeeklySummaryEnabled bool    `json:"weekly_summary_enabled"`
	WeeklySummaryDay     string  `json:"weekly_summary_day" validate:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	NotificationType     string  `json:"notification_type" validate:"omitempty,max=32"`
	CustomMessage        *string `json:"custom_message" validate:"omitempty,max=500"`
}

// DailyReminder is the outcome of a daily trigger. Message is empty when Due is false.
type DailyReminder struct {
	Due     bool   `json:"due"`
	Message string `json:"message,omitempty"`
}

type MoodReminderService interface {
	Create(ctx context.Context, in ReminderInput) (*types.MoodReminder, error)
	List(ctx context.Context) ([]*types.MoodReminder, error)
	SetEnabled(ctx context.Context, reminderID uuid.UUID, enabled bool) error
	TriggerDaily(ctx context.Context) (DailyReminder, error)
	Dismiss(ctx context.Context) error
	MarkCompleted(ctx context.Context) error
	UpdatePreferences(ctx context.Context, in PreferencesInput) (*types.ReminderPreferences, error)
	GetPreferences(ctx context.Context) (*types.ReminderPreferences, error)
	RemindersEnabled(ctx context.Context) (bool, error)
	CustomMessage(ctx context.Context) (string, error)
	IsTimeForWeeklySummary(ctx context.Context) (bool, error)
	WeeklySummary(ctx context.Context) (string, error)
	HasReachedStreakTarget(ctx context.Context, target int) (bool, error)
	MotivationalMessage(ctx context.Context) (string, error)
}

type moodReminderService struct {
	db            *gorm.DB
	log           *logger.Logger
	txr           datadb.TxRunner
	reminderRepo  repos.MoodReminderRepo
	prefsRepo     repos.ReminderPreferencesRepo
	dismissalRepo repos.ReminderDismissalRepo
	entryRepo     repos.MoodEntryRepo
	clock         Clock
}

func NewMoodReminderService(
	db *gorm.DB,
	log *logger.Logger,
	reminderRepo repos.MoodReminderRepo,
	prefsRepo repos.ReminderPreferencesRepo,
	dismissalRepo repos.ReminderDismissalRepo,
	entryRepo repos.MoodEntryRepo,
	clock Clock,
) MoodReminderService {
	serviceLog := log.With("service", "MoodReminderService")
	return &moodReminderService{
		db:            db,
		log:           serviceLog,
		txr:           datadb.NewTxRunner(db),
		reminderRepo:  reminderRepo,
		prefsRepo:     prefsRepo,
		dismissalRepo: dismissalRepo,
		entryRepo:     entryRepo,
		clock:         clock,
	}
}

var errReminderNotFound = apierr.NotFound("not_found", errors.New("mood reminder not found"))

func parseClock(s string, fallback datatypes.Time) (datatypes.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, apierr.BadRequest(validate.Code, fmt.Errorf("invalid time of day %q", s))
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}

func (s *moodReminderService) Create(ctx context.Context, in ReminderInput) (*types.MoodReminder, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.DayOfWeek = strings.ToUpper(strings.TrimSpace(in.DayOfWeek))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	at, err := parseClock(in.ReminderTime, datatypes.NewTime(mood.DefaultReminderHour, 0, 0, 0))
	if err != nil {
		return nil, err
	}
	reminder := &types.MoodReminder{
		UserID:       userID,
		Type:         in.Type,
		ReminderTime: at,
		DayOfWeek:    in.DayOfWeek,
		Enabled:      true,
		StreakTarget: in.StreakTarget,
	}
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.reminderRepo.Create(dbc, []*types.MoodReminder{reminder}); err != nil {
			return fmt.Errorf("create mood reminder: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *moodReminderService) List(ctx context.Context) ([]*types.MoodReminder, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.reminderRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
}

func (s *moodReminderService) SetEnabled(ctx context.Context, reminderID uuid.UUID, enabled bool) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	return s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.reminderRepo.SetEnabled(dbc, userID, reminderID, enabled); err != nil {
			if datadb.IsNotFound(err) {
				return errReminderNotFound
			}
			return fmt.Errorf("update mood reminder: %w", err)
		}
		return nil
	})
}

// TriggerDaily is due when nothing was logged today and the reminder was
// not dismissed today.
func (s *moodReminderService) TriggerDaily(ctx context.Context) (DailyReminder, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return DailyReminder{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	today := s.clock.today()

	logged, err := s.entryRepo.GetByUserAndDate(dbc, userID, today)
	if err != nil {
		return DailyReminder{}, err
	}
	if logged != nil {
		return DailyReminder{}, nil
	}
	dismissed, err := s.dismissalRepo.Exists(dbc, userID, today)
	if err != nil {
		return DailyReminder{}, err
	}
	if dismissed {
		return DailyReminder{}, nil
	}

	yesterday, err := s.entryRepo.GetByUserAndDate(dbc, userID, today.AddDate(0, 0, -1))
	if err != nil {
		return DailyReminder{}, err
	}
	var prev *types.MoodType
	if yesterday != nil {
		prev = &yesterday.Mood
	}
	return DailyReminder{Due: true, Message: analytics.DailyReminderMessage(prev)}, nil
}

func (s *moodReminderService) Dismiss(ctx context.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	return s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		return s.dismissalRepo.Create(dbc, userID, s.clock.today())
	})
}

// MarkCompleted clears today's dismissal.
func (s *moodReminderService) MarkCompleted(ctx context.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	return s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		return s.dismissalRepo.Delete(dbc, userID, s.clock.today())
	})
}

func (s *moodReminderService) UpdatePreferences(ctx context.Context, in PreferencesInput) (*types.ReminderPreferences, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	in.WeeklySummaryDay = strings.ToUpper(strings.TrimSpace(in.WeeklySummaryDay))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	defaults := mood.DefaultReminderPreferences(userID)
	at, err := parseClock(in.DailyReminderTime, defaults.DailyReminderTime)
	if err != nil {
		return nil, err
	}
	prefs := &types.ReminderPreferences{
		UserID:               userID,
		DailyReminderEnabled: in.DailyReminderEnabled,
		DailyReminderTime:    at,
		WeeklySummaryEnabled: in.WeeklySummaryEnabled,
		WeeklySummaryDay:     in.WeeklySummaryDay,
		NotificationType:     in.NotificationType,
		CustomMessage:        in.CustomMessage,
	}
	if prefs.WeeklySummaryDay == "" {
		prefs.WeeklySummaryDay = defaults.WeeklySummaryDay
	}
	if prefs.NotificationType == "" {
		prefs.NotificationType = defaults.NotificationType
	}

	var out *types.ReminderPreferences
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.prefsRepo.Upsert(dbc, prefs); err != nil {
			return fmt.Errorf("save reminder preferences: %w", err)
		}
		var err error
		out, err = s.prefsRepo.GetByUserID(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPreferences returns the stored preferences or the defaults. Defaults
// are not persisted.
func (s *moodReminderService) GetPreferences(ctx context.Context) (*types.ReminderPreferences, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefsRepo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return mood.DefaultReminderPreferences(userID), nil
	}
	return prefs, nil
}

func (s *moodReminderService) RemindersEnabled(ctx context.Context) (bool, error) {
	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return false, err
	}
	return prefs.DailyReminderEnabled || prefs.WeeklySummaryEnabled, nil
}

func (s *moodReminderService) CustomMessage(ctx context.Context) (string, error) {
	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return "", err
	}
	if prefs.CustomMessage == nil || strings.TrimSpace(*prefs.CustomMessage) == "" {
		return mood.DefaultCustomMessage, nil
	}
	return *prefs.CustomMessage, nil
}

func (s *moodReminderService) IsTimeForWeeklySummary(ctx context.Context) (bool, error) {
	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return false, err
	}
	if !prefs.WeeklySummaryEnabled {
		return false, nil
	}
	day, ok := mood.ParseWeekday(prefs.WeeklySummaryDay)
	return ok && day == s.clock.today().Weekday(), nil
}

func (s *moodReminderService) recentEntries(ctx context.Context) ([]*types.MoodEntry, time.Time, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	today := s.clock.today()
	entries, err := s.entryRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, time.Time{}, err
	}
	return entries, today, nil
}

func (s *moodReminderService) WeeklySummary(ctx context.Context) (string, error) {
	entries, today, err := s.recentEntries(ctx)
	if err != nil {
		return "", err
	}
	return analytics.WeeklySummary(entries, today), nil
}

func (s *moodReminderService) HasReachedStreakTarget(ctx context.Context, target int) (bool, error) {
	entries, today, err := s.recentEntries(ctx)
	if err != nil {
		return false, err
	}
	return analytics.HasReachedStreakTarget(entries, target, today), nil
}

func (s *moodReminderService) MotivationalMessage(ctx context.Context) (string, error) {
	entries, today, err := s.recentEntries(ctx)
	if err != nil {
		return "", err
	}
	return analytics.MotivationalMessage(entries, today), nil
}
