package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/domain/user"
)

type GoalType string

const (
	GoalHappyDays GoalType = "HAPPY_DAYS"
	GoalStreak    GoalType = "STREAK"
	GoalCustom    GoalType = "CUSTOM"
)

type MoodGoal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Type        GoalType   `gorm:"type:varchar(32);not null" json:"type"`
	Target      int        `gorm:"not null" json:"target"`
	Timeframe   string     `gorm:"column:timeframe" json:"timeframe"`
	Description string     `gorm:"column:description" json:"description"`
	Active      bool       `gorm:"not null;index" json:"active"`
	Completed   bool       `gorm:"not null" json:"completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (MoodGoal) TableName() string { return "mood_goal" }

func (g *MoodGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GoalAchievement is the points ledger. Total points are the sum over a user's rows.
type GoalAchievement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"goal_id"`
	Goal       *MoodGoal `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	GoalType   GoalType  `gorm:"type:varchar(32);not null" json:"goal_type"`
	Target     int       `gorm:"not null" json:"target"`
	Points     int       `gorm:"not null" json:"points"`
	AchievedAt time.Time `gorm:"not null" json:"achieved_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (GoalAchievement) TableName() string { return "goal_achievement" }

func (a *GoalAchievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
