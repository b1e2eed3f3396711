package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/domain/user"
)

const (
	DefaultReminderHour     = 18
	DefaultWeeklySummaryDay = "SUNDAY"
	DefaultNotificationType = "in_app"
	DefaultCustomMessage    = "Time to check in with yourself! How are you feeling today?"
)

type MoodReminder struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Type         string         `gorm:"type:varchar(32);not null" json:"type"`
	ReminderTime datatypes.Time `gorm:"column:reminder_time" json:"reminder_time"`
	DayOfWeek    string         `gorm:"column:day_of_week" json:"day_of_week"`
	Enabled      bool           `gorm:"not null" json:"enabled"`
	StreakTarget int            `gorm:"column:streak_target" json:"streak_target"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (MoodReminder) TableName() string { return "mood_reminder" }

func (r *MoodReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ReminderPreferences struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User                 *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DailyReminderEnabled bool           `gorm:"not null" json:"daily_reminder_enabled"`
	DailyReminderTime    datatypes.Time `gorm:"column:daily_reminder_time" json:"daily_reminder_time"`
	WeeklySummaryEnabled bool           `gorm:"not null" json:"weekly_summary_enabled"`
	WeeklySummaryDay     string         `gorm:"column:weekly_summary_day" json:"weekly_summary_day"`
	NotificationType     string         `gorm:"column:notification_type" json:"notification_type"`
	CustomMessage        *string        `gorm:"column:custom_message" json:"custom_message,omitempty"`
	CreatedAt            time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null" json:"updated_at"`
}

func (ReminderPreferences) TableName() string { return "reminder_preferences" }

func (p *ReminderPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DefaultReminderPreferences is what a user gets before saving any preferences.
func DefaultReminderPreferences(userID uuid.UUID) *ReminderPreferences {
	msg := DefaultCustomMessage
	return &ReminderPreferences{
		UserID:               userID,
		DailyReminderEnabled: true,
		DailyReminderTime:    datatypes.NewTime(DefaultReminderHour, 0, 0, 0),
		WeeklySummaryEnabled: true,
		WeeklySummaryDay:     DefaultWeeklySummaryDay,
		NotificationType:     DefaultNotificationType,
		CustomMessage:        &msg,
	}
}

// ReminderDismissal records that a user dismissed the daily reminder on Date.
type ReminderDismissal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_dismissal_user_date,priority:1" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_reminder_dismissal_user_date,priority:2" json:"date"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ReminderDismissal) TableName() string { return "reminder_dismissal" }

func (d *ReminderDismissal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.Date = Day(d.Date)
	return nil
}
