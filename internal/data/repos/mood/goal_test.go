package mood

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
)

func TestMoodGoalAndAchievementRepos(t *testing.T) {
	database := testutil.DB(t)
	tx := testutil.Tx(t, database)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	goals := NewMoodGoalRepo(database, testutil.Logger(t))
	achievements := NewGoalAchievementRepo(database, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "goalrepo@example.com")
	stranger := testutil.SeedUser(t, ctx, tx, "goalrepo-stranger@example.com")

	first := testutil.SeedGoal(t, ctx, tx, u.ID, types.GoalHappyDays, 3)
	second := testutil.SeedGoal(t, ctx, tx, u.ID, types.GoalStreak, 5)

	if g, err := goals.GetByID(dbc, stranger.ID, first.ID); err != nil || g != nil {
		t.Fatalf("GetByID(other user): err=%v goal=%+v", err, g)
	}

	if err := goals.MarkCompleted(dbc, first.ID, time.Now().UTC()); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	active, err := goals.ListActiveByUser(dbc, u.ID)
	if err != nil || len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("ListActiveByUser: err=%v active=%+v", err, active)
	}
	done, err := goals.GetByID(dbc, u.ID, first.ID)
	if err != nil || done == nil || !done.Completed || done.Active || done.CompletedAt == nil {
		t.Fatalf("GetByID after completion: err=%v goal=%+v", err, done)
	}

	if err := goals.Update(dbc, second.ID, map[string]interface{}{"target": 7}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := goals.Update(dbc, uuid.New(), map[string]interface{}{"target": 7}); err == nil {
		t.Fatalf("Update(missing): expected error")
	}

	all, err := goals.ListByUser(dbc, u.ID)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(all))
	}

	total, err := achievements.TotalPointsByUser(dbc, u.ID)
	if err != nil || total != 0 {
		t.Fatalf("TotalPointsByUser(empty): err=%v total=%d", err, total)
	}
	if _, err := achievements.Create(dbc, &types.GoalAchievement{
		UserID: u.ID, GoalID: first.ID, GoalType: types.GoalHappyDays, Target: 3, Points: 30, AchievedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create achievement: %v", err)
	}
	if _, err := achievements.Create(dbc, &types.GoalAchievement{
		UserID: u.ID, GoalID: second.ID, GoalType: types.GoalStreak, Target: 7, Points: 105, AchievedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create achievement: %v", err)
	}
	total, err = achievements.TotalPointsByUser(dbc, u.ID)
	if err != nil || total != 135 {
		t.Fatalf("TotalPointsByUser: err=%v total=%d", err, total)
	}
	rows, err := achievements.ListByUser(dbc, u.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByUser achievements: err=%v len=%d", err, len(rows))
	}
}
