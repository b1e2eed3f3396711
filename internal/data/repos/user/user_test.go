package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Email:     "userrepo@example.com",
			Password:  "pw",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: expected 1 user with an id, got %+v", created)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByEmails, err := repo.GetByEmails(dbc, []string{created[0].Email})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(gotByEmails) != 1 || gotByEmails[0].Email != created[0].Email {
		t.Fatalf("GetByEmails: unexpected result: %+v", gotByEmails)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}
	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists(missing): err=%v exists=%v", err, exists)
	}

	if err := repo.UpdateName(dbc, created[0].ID, "C", "D"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	gotByIDs, err = repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil || gotByIDs[0].FirstName != "C" || gotByIDs[0].LastName != "D" {
		t.Fatalf("UpdateName: err=%v user=%+v", err, gotByIDs)
	}

	folded, err := repo.GetByEmails(dbc, []string{"  UserRepo@Example.COM "})
	if err != nil || len(folded) != 1 {
		t.Fatalf("GetByEmails(case): err=%v users=%+v", err, folded)
	}
	exists, err = repo.EmailExists(dbc, "USERREPO@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists(case): err=%v exists=%v", err, exists)
	}

	if err := repo.UpdateName(dbc, uuid.New(), "X", "Y"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("UpdateName(missing): expected ErrRecordNotFound, got %v", err)
	}
}
