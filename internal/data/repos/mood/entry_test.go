package mood

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
)

func TestMoodEntryRepo(t *testing.T) {
	database := testutil.DB(t)
	tx := testutil.Tx(t, database)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewMoodEntryRepo(database, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "moodentryrepo@example.com")
	other := testutil.SeedUser(t, ctx, tx, "moodentryrepo-other@example.com")

	jan1 := testutil.Date(2024, 1, 1)
	jan2 := testutil.Date(2024, 1, 2)
	jan3 := testutil.Date(2024, 1, 3)

	created, err := repo.Create(dbc, []*types.MoodEntry{
		{UserID: u.ID, Date: jan3, Mood: types.MoodSad},
		{UserID: u.ID, Date: jan1, Mood: types.MoodHappy},
		{UserID: u.ID, Date: jan2, Mood: types.MoodHappy},
		{UserID: other.ID, Date: jan1, Mood: types.MoodAngry},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, e := range created {
		if e.ID == uuid.Nil {
			t.Fatalf("Create: expected id to be assigned")
		}
	}

	all, err := repo.ListByUser(dbc, u.ID)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(all))
	}
	if !all[0].Date.Equal(jan1) || !all[2].Date.Equal(jan3) {
		t.Fatalf("ListByUser: expected ascending dates, got %v .. %v", all[0].Date, all[2].Date)
	}

	between, err := repo.ListByUserBetween(dbc, u.ID, jan2, jan3)
	if err != nil || len(between) != 2 {
		t.Fatalf("ListByUserBetween: err=%v len=%d", err, len(between))
	}

	got, err := repo.GetByUserAndDate(dbc, u.ID, jan2)
	if err != nil || got == nil || got.Mood != types.MoodHappy {
		t.Fatalf("GetByUserAndDate: err=%v got=%+v", err, got)
	}
	missing, err := repo.GetByUserAndDate(dbc, u.ID, testutil.Date(2024, 2, 1))
	if err != nil || missing != nil {
		t.Fatalf("GetByUserAndDate(missing): err=%v got=%+v", err, missing)
	}

	dist, err := repo.DistributionByUser(dbc, u.ID)
	if err != nil {
		t.Fatalf("DistributionByUser: %v", err)
	}
	if dist[types.MoodHappy] != 2 || dist[types.MoodSad] != 1 || len(dist) != 2 {
		t.Fatalf("DistributionByUser: unexpected %v", dist)
	}

	n, err := repo.CountByUserAndMood(dbc, u.ID, types.MoodHappy)
	if err != nil || n != 2 {
		t.Fatalf("CountByUserAndMood: err=%v n=%d", err, n)
	}

	if err := repo.UpdateMood(dbc, got.ID, types.MoodNeutral); err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}
	reloaded, err := repo.GetByID(dbc, got.ID)
	if err != nil || reloaded == nil || reloaded.Mood != types.MoodNeutral || !reloaded.Date.Equal(jan2) {
		t.Fatalf("GetByID after update: err=%v got=%+v", err, reloaded)
	}
	if err := repo.UpdateMood(dbc, uuid.New(), types.MoodSad); err == nil {
		t.Fatalf("UpdateMood(missing): expected error")
	}

	exists, err := repo.ExistsByID(dbc, got.ID)
	if err != nil || !exists {
		t.Fatalf("ExistsByID: err=%v exists=%v", err, exists)
	}

	deleted, err := repo.Delete(dbc, []uuid.UUID{got.ID})
	if err != nil || deleted != 1 {
		t.Fatalf("Delete: err=%v deleted=%d", err, deleted)
	}
	exists, err = repo.ExistsByID(dbc, got.ID)
	if err != nil || exists {
		t.Fatalf("ExistsByID after delete: err=%v exists=%v", err, exists)
	}
}

func TestMoodEntryRepoRejectsDuplicateDay(t *testing.T) {
	database := testutil.DB(t)
	tx := testutil.Tx(t, database)

	ctx := context.Background()
	repo := NewMoodEntryRepo(database, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "moodentryrepo-dup@example.com")
	day := testutil.Date(2024, 5, 1)
	testutil.SeedMoodEntry(t, ctx, tx, u.ID, day, types.MoodHappy)

	// Nested transaction so the failed insert only rolls back to a savepoint.
	err := tx.Transaction(func(inner *gorm.DB) error {
		_, err := repo.Create(dbctx.Context{Ctx: ctx, Tx: inner}, []*types.MoodEntry{
			{UserID: u.ID, Date: day, Mood: types.MoodSad},
		})
		return err
	})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	rows, err := repo.ListByUser(dbctx.Context{Ctx: ctx, Tx: tx}, u.ID)
	if err != nil || len(rows) != 1 || rows[0].Mood != types.MoodHappy {
		t.Fatalf("store changed after duplicate: err=%v rows=%+v", err, rows)
	}
}

func TestMoodEntryRepoPageByUser(t *testing.T) {
	database := testutil.DB(t)
	tx := testutil.Tx(t, database)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewMoodEntryRepo(database, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "moodentryrepo-page@example.com")

	for d := 1; d <= 5; d++ {
		testutil.SeedMoodEntry(t, ctx, tx, u.ID, testutil.Date(2024, 3, d), types.MoodNeutral)
	}

	rows, total, err := repo.PageByUser(dbc, u.ID, PageRequest{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("PageByUser: %v", err)
	}
	if total != 5 || len(rows) != 2 {
		t.Fatalf("PageByUser: total=%d len=%d", total, len(rows))
	}
	if !rows[0].Date.Equal(testutil.Date(2024, 3, 5)) {
		t.Fatalf("PageByUser: default order should be newest first, got %v", rows[0].Date)
	}

	rows, _, err = repo.PageByUser(dbc, u.ID, PageRequest{Page: 2, Size: 2, Sort: []Sort{{Field: "date"}}})
	if err != nil || len(rows) != 1 || !rows[0].Date.Equal(testutil.Date(2024, 3, 5)) {
		t.Fatalf("PageByUser(last page asc): err=%v rows=%+v", err, rows)
	}
}
