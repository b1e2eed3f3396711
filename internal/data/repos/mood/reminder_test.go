package mood

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	domainmood "github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
)

func TestReminderRepos(t *testing.T) {
	database := testutil.DB(t)
	tx := testutil.Tx(t, database)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	reminders := NewMoodReminderRepo(database, log)
	prefs := NewReminderPreferencesRepo(database, log)
	dismissals := NewReminderDismissalRepo(database, log)

	u := testutil.SeedUser(t, ctx, tx, "reminderrepo@example.com")

	created, err := reminders.Create(dbc, []*types.MoodReminder{{
		UserID:       u.ID,
		Type:         "DAILY",
		ReminderTime: datatypes.NewTime(9, 30, 0, 0),
		Enabled:      true,
	}})
	if err != nil || len(created) != 1 {
		t.Fatalf("Create reminder: err=%v", err)
	}
	if err := reminders.SetEnabled(dbc, u.ID, created[0].ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	list, err := reminders.ListByUser(dbc, u.ID)
	if err != nil || len(list) != 1 || list[0].Enabled {
		t.Fatalf("ListByUser: err=%v list=%+v", err, list)
	}
	if list[0].ReminderTime.String() != "09:30:00" {
		t.Fatalf("reminder time not preserved: %s", list[0].ReminderTime.String())
	}

	if p, err := prefs.GetByUserID(dbc, u.ID); err != nil || p != nil {
		t.Fatalf("GetByUserID(empty): err=%v prefs=%+v", err, p)
	}
	p := domainmood.DefaultReminderPreferences(u.ID)
	if _, err := prefs.Upsert(dbc, p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	update := domainmood.DefaultReminderPreferences(u.ID)
	update.WeeklySummaryDay = "MONDAY"
	update.DailyReminderEnabled = false
	saved, err := prefs.Upsert(dbc, update)
	if err != nil {
		t.Fatalf("Upsert(update): %v", err)
	}
	if saved.WeeklySummaryDay != "MONDAY" || saved.DailyReminderEnabled {
		t.Fatalf("Upsert did not update: %+v", saved)
	}

	day := testutil.Date(2024, 6, 1)
	if err := dismissals.Create(dbc, u.ID, day); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := dismissals.Create(dbc, u.ID, day); err != nil {
		t.Fatalf("Dismiss twice: %v", err)
	}
	ok, err := dismissals.Exists(dbc, u.ID, day)
	if err != nil || !ok {
		t.Fatalf("Exists: err=%v ok=%v", err, ok)
	}
	if err := dismissals.Delete(dbc, u.ID, day); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, err = dismissals.Exists(dbc, u.ID, day)
	if err != nil || ok {
		t.Fatalf("Exists after delete: err=%v ok=%v", err, ok)
	}
}
