package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/platform/validate"
)

// MoodEntryFields is a create or update request. Nil fields are absent.
type MoodEntryFields struct {
	ID   *uuid.UUID
	Date *time.Time
	Mood *types.MoodType
}

type MoodEntryService interface {
	Create(ctx context.Context, in MoodEntryFields) (*types.MoodEntry, error)
	Update(ctx context.Context, id uuid.UUID, in MoodEntryFields) (*types.MoodEntry, error)
	PartialUpdate(ctx context.Context, id uuid.UUID, in MoodEntryFields) (*types.MoodEntry, error)
	FindOne(ctx context.Context, id uuid.UUID) (*types.MoodEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForCurrentUser(ctx context.Context, page repos.PageRequest) ([]*types.MoodEntry, int64, error)
	FindByDate(ctx context.Context, date time.Time) (*types.MoodEntry, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]*types.MoodEntry, error)
	StatisticsBetween(ctx context.Context, start, end time.Time) (analytics.Snapshot, error)
	StatisticsCurrentMonth(ctx context.Context) (analytics.Snapshot, error)
	StatisticsLastWeek(ctx context.Context) (analytics.Snapshot, error)
}

type moodEntryService struct {
	db        *gorm.DB
	log       *logger.Logger
	txr       datadb.TxRunner
	entryRepo repos.MoodEntryRepo
	clock     Clock
}

func NewMoodEntryService(db *gorm.DB, log *logger.Logger, entryRepo repos.MoodEntryRepo, clock Clock) MoodEntryService {
	serviceLog := log.With("service", "MoodEntryService")
	return &moodEntryService{
		db:        db,
		log:       serviceLog,
		txr:       datadb.NewTxRunner(db),
		entryRepo: entryRepo,
		clock:     clock,
	}
}

var errEntryNotFound = apierr.NotFound("not_found", errors.New("mood entry not found"))

func duplicateEntry(date time.Time) error {
	return apierr.Newf(http.StatusConflict, "duplicate_entry", "a mood entry already exists for %s", mood.FormatDay(date))
}

func requireMood(m *types.MoodType) error {
	if m == nil || *m == "" {
		return apierr.BadRequest(validate.Code, errors.New("mood is required"))
	}
	if !m.Valid() {
		return apierr.BadRequest(validate.Code, errors.New("mood must be one of: HAPPY SAD ANGRY NEUTRAL ANXIOUS"))
	}
	return nil
}

func (s *moodEntryService) Create(ctx context.Context, in MoodEntryFields) (*types.MoodEntry, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if in.ID != nil {
		return nil, apierr.BadRequest("idexists", errors.New("a new mood entry cannot already have an id"))
	}
	if in.Date == nil || in.Date.IsZero() {
		return nil, apierr.BadRequest(validate.Code, errors.New("date is required"))
	}
	if err := requireMood(in.Mood); err != nil {
		return nil, err
	}
	date := mood.Day(*in.Date)

	entry := &types.MoodEntry{UserID: userID, Date: date, Mood: *in.Mood}
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.entryRepo.GetByUserAndDate(dbc, userID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			return duplicateEntry(date)
		}
		if _, err := s.entryRepo.Create(dbc, []*types.MoodEntry{entry}); err != nil {
			if datadb.IsUniqueViolation(err) {
				return duplicateEntry(date)
			}
			return fmt.Errorf("create mood entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncMoodEntryCreated(entry.Mood.String())
	s.log.Debug("Mood entry created", "user_id", userID, "date", mood.FormatDay(date), "mood", entry.Mood)
	return entry, nil
}

// Update replaces the mood of an entry. The date is required and must match
// the stored date.
func (s *moodEntryService) Update(ctx context.Context, id uuid.UUID, in MoodEntryFields) (*types.MoodEntry, error) {
	if in.Date == nil || in.Date.IsZero() {
		return nil, apierr.BadRequest(validate.Code, errors.New("date is required"))
	}
	if err := requireMood(in.Mood); err != nil {
		return nil, err
	}
	return s.update(ctx, id, in)
}

// PartialUpdate applies only the fields that are present.
func (s *moodEntryService) PartialUpdate(ctx context.Context, id uuid.UUID, in MoodEntryFields) (*types.MoodEntry, error) {
	if in.Mood != nil {
		if err := requireMood(in.Mood); err != nil {
			return nil, err
		}
	}
	return s.update(ctx, id, in)
}

func (s *moodEntryService) update(ctx context.Context, id uuid.UUID, in MoodEntryFields) (*types.MoodEntry, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	var out *types.MoodEntry
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.ownedEntry(dbc, userID, id)
		if err != nil {
			return err
		}
		if in.Date != nil && !mood.Day(*in.Date).Equal(mood.Day(existing.Date)) {
			return apierr.BadRequest("date_immutable", errors.New("the date of a mood entry cannot be changed"))
		}
		if in.Mood != nil && *in.Mood != existing.Mood {
			if err := s.entryRepo.UpdateMood(dbc, id, *in.Mood); err != nil {
				if datadb.IsNotFound(err) {
					return errEntryNotFound
				}
				return fmt.Errorf("update mood entry: %w", err)
			}
		}
		out, err = s.entryRepo.GetByID(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ownedEntry hides entries of other users behind the same 404 as missing ones.
func (s *moodEntryService) ownedEntry(dbc dbctx.Context, userID, id uuid.UUID) (*types.MoodEntry, error) {
	e, err := s.entryRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.UserID != userID {
		return nil, errEntryNotFound
	}
	return e, nil
}

func (s *moodEntryService) FindOne(ctx context.Context, id uuid.UUID) (*types.MoodEntry, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.ownedEntry(dbctx.Context{Ctx: ctx}, userID, id)
}

func (s *moodEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	return s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.ownedEntry(dbc, userID, id); err != nil {
			return err
		}
		n, err := s.entryRepo.Delete(dbc, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("delete mood entry: %w", err)
		}
		if n == 0 {
			return errEntryNotFound
		}
		return nil
	})
}

func (s *moodEntryService) ListForCurrentUser(ctx context.Context, page repos.PageRequest) ([]*types.MoodEntry, int64, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.entryRepo.PageByUser(dbctx.Context{Ctx: ctx}, userID, page.Normalize())
}

func (s *moodEntryService) FindByDate(ctx context.Context, date time.Time) (*types.MoodEntry, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.entryRepo.GetByUserAndDate(dbctx.Context{Ctx: ctx}, userID, date)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errEntryNotFound
	}
	return e, nil
}

func (s *moodEntryService) FindBetween(ctx context.Context, start, end time.Time) ([]*types.MoodEntry, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.entryRepo.ListByUserBetween(dbctx.Context{Ctx: ctx}, userID, start, end)
}

func (s *moodEntryService) StatisticsBetween(ctx context.Context, start, end time.Time) (analytics.Snapshot, error) {
	entries, err := s.FindBetween(ctx, start, end)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	return analytics.Compute(entries, start, end, s.clock.today()), nil
}

func (s *moodEntryService) StatisticsCurrentMonth(ctx context.Context) (analytics.Snapshot, error) {
	first, last := mood.MonthBounds(s.clock.today())
	return s.StatisticsBetween(ctx, first, last)
}

func (s *moodEntryService) StatisticsLastWeek(ctx context.Context) (analytics.Snapshot, error) {
	today := s.clock.today()
	return s.StatisticsBetween(ctx, today.AddDate(0, 0, -6), today)
}
