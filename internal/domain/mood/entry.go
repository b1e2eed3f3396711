package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/domain/user"
)

type MoodEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time  `gorm:"type:date;not null;uniqueIndex:idx_mood_entry_user_date,priority:2" json:"date"`
	Mood      MoodType   `gorm:"type:varchar(16);not null;index" json:"mood"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_mood_entry_user_date,priority:1" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (MoodEntry) TableName() string { return "mood_entry" }

func (e *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.Date = Day(e.Date)
	return nil
}
