package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/ctxutil"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

// Wednesday.
var testNow = time.Date(2024, time.March, 13, 10, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type testEnv struct {
	tx    *gorm.DB
	log   *logger.Logger
	user  *types.User
	ctx   context.Context
	clock Clock

	entries      repos.MoodEntryRepo
	goals        repos.MoodGoalRepo
	achievements repos.GoalAchievementRepo
	reminders    repos.MoodReminderRepo
	prefs        repos.ReminderPreferencesRepo
	dismissals   repos.ReminderDismissalRepo
}

func newTestEnv(t *testing.T, email string) *testEnv {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	u := testutil.SeedUser(t, context.Background(), tx, email)
	return &testEnv{
		tx:           tx,
		log:          log,
		user:         u,
		ctx:          asUser(context.Background(), u.ID),
		clock:        fixedClock(testNow),
		entries:      repos.NewMoodEntryRepo(tx, log),
		goals:        repos.NewMoodGoalRepo(tx, log),
		achievements: repos.NewGoalAchievementRepo(tx, log),
		reminders:    repos.NewMoodReminderRepo(tx, log),
		prefs:        repos.NewReminderPreferencesRepo(tx, log),
		dismissals:   repos.NewReminderDismissalRepo(tx, log),
	}
}

func asUser(ctx context.Context, userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID})
}

// seed stores moods on consecutive days starting at first.
func (e *testEnv) seed(t *testing.T, first time.Time, moods ...types.MoodType) {
	t.Helper()
	for i, m := range moods {
		testutil.SeedMoodEntry(t, context.Background(), e.tx, e.user.ID, first.AddDate(0, 0, i), m)
	}
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	gotStatus, gotCode := apierr.Classify(err)
	require.Equal(t, status, gotStatus, "status for %v", err)
	require.Equal(t, code, gotCode, "code for %v", err)
}

func dbctxOf(ctx context.Context) dbctx.Context {
	return dbctx.Context{Ctx: ctx}
}
