package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMoodEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, mood types.MoodType) *types.MoodEntry {
	tb.Helper()
	e := &types.MoodEntry{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
		Mood:   mood,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed mood entry: %v", err)
	}
	return e
}

func SeedGoal(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, goalType types.GoalType, target int) *types.MoodGoal {
	tb.Helper()
	g := &types.MoodGoal{
		ID:     uuid.New(),
		UserID: userID,
		Type:   goalType,
		Target: target,
		Active: true,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}

// Date returns the UTC midnight of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
