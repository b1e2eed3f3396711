package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	txr      datadb.TxRunner
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		txr:      datadb.NewTxRunner(db),
		userRepo: userRepo,
	}
}

var errUserNotFound = apierr.NotFound("not_found", errors.New("user does not exist"))

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	userID, err := requireUserID(dbc.Ctx)
	if err != nil {
		us.log.Warn("User id not set in request data")
		return nil, err
	}
	found, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, errUserNotFound
	}
	return found[0], nil
}

func (us *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apierr.BadRequest("invalid_request", errors.New("first_name and last_name required"))
	}

	var out *types.User
	if err := us.txr.InTx(ctx, func(dbc dbctx.Context) error {
		if err := us.userRepo.UpdateName(dbc, userID, firstName, lastName); err != nil {
			if datadb.IsNotFound(err) {
				return errUserNotFound
			}
			return err
		}
		u, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		if len(u) == 0 {
			return errUserNotFound
		}
		out = u[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
