package mood

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	domainmood "github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type MoodReminderRepo interface {
	Create(dbc dbctx.Context, reminders []*types.MoodReminder) ([]*types.MoodReminder, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodReminder, error)
	SetEnabled(dbc dbctx.Context, userID, reminderID uuid.UUID, enabled bool) error
}

type moodReminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodReminderRepo(db *gorm.DB, baseLog *logger.Logger) MoodReminderRepo {
	repoLog := baseLog.With("repo", "MoodReminderRepo")
	return &moodReminderRepo{db: db, log: repoLog}
}

func (r *moodReminderRepo) Create(dbc dbctx.Context, reminders []*types.MoodReminder) ([]*types.MoodReminder, error) {
	if len(reminders) == 0 {
		return []*types.MoodReminder{}, nil
	}
	if err := dbc.DB(r.db).Create(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *moodReminderRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodReminder, error) {
	var results []*types.MoodReminder
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodReminderRepo) SetEnabled(dbc dbctx.Context, userID, reminderID uuid.UUID, enabled bool) error {
	res := dbc.DB(r.db).
		Model(&types.MoodReminder{}).
		Where("id = ? AND user_id = ?", reminderID, userID).
		Updates(map[string]any{"enabled": enabled, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ReminderPreferencesRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ReminderPreferences, error)
	Upsert(dbc dbctx.Context, prefs *types.ReminderPreferences) (*types.ReminderPreferences, error)
}

type reminderPreferencesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderPreferencesRepo(db *gorm.DB, baseLog *logger.Logger) ReminderPreferencesRepo {
	repoLog := baseLog.With("repo", "ReminderPreferencesRepo")
	return &reminderPreferencesRepo{db: db, log: repoLog}
}

func (r *reminderPreferencesRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ReminderPreferences, error) {
	var prefs types.ReminderPreferences
	err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert keeps a single preferences row per user.
func (r *reminderPreferencesRepo) Upsert(dbc dbctx.Context, prefs *types.ReminderPreferences) (*types.ReminderPreferences, error) {
	err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"daily_reminder_enabled",
				"daily_reminder_time",
				"weekly_summary_enabled",
				"weekly_summary_day",
				"notification_type",
				"custom_message",
				"updated_at",
			}),
		}).
		Create(prefs).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(dbc, prefs.UserID)
}

type ReminderDismissalRepo interface {
	Create(dbc dbctx.Context, userID uuid.UUID, date time.Time) error
	Exists(dbc dbctx.Context, userID uuid.UUID, date time.Time) (bool, error)
	Delete(dbc dbctx.Context, userID uuid.UUID, date time.Time) error
}

type reminderDismissalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderDismissalRepo(db *gorm.DB, baseLog *logger.Logger) ReminderDismissalRepo {
	repoLog := baseLog.With("repo", "ReminderDismissalRepo")
	return &reminderDismissalRepo{db: db, log: repoLog}
}

// Create is idempotent per (user, date).
func (r *reminderDismissalRepo) Create(dbc dbctx.Context, userID uuid.UUID, date time.Time) error {
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.ReminderDismissal{UserID: userID, Date: domainmood.Day(date)}).Error
}

func (r *reminderDismissalRepo) Exists(dbc dbctx.Context, userID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.ReminderDismissal{}).
		Where("user_id = ? AND date = ?", userID, domainmood.Day(date)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reminderDismissalRepo) Delete(dbc dbctx.Context, userID uuid.UUID, date time.Time) error {
	return dbc.DB(r.db).
		Where("user_id = ? AND date = ?", userID, domainmood.Day(date)).
		Delete(&types.ReminderDismissal{}).Error
}
