package mood

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	domainmood "github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type MoodEntryRepo interface {
	Create(dbc dbctx.Context, entries []*types.MoodEntry) ([]*types.MoodEntry, error)
	UpdateMood(dbc dbctx.Context, entryID uuid.UUID, m types.MoodType) error
	GetByID(dbc dbctx.Context, entryID uuid.UUID) (*types.MoodEntry, error)
	GetByIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.MoodEntry, error)
	GetByUserAndDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.MoodEntry, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodEntry, error)
	ListByUserBetween(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.MoodEntry, error)
	PageByUser(dbc dbctx.Context, userID uuid.UUID, page PageRequest) ([]*types.MoodEntry, int64, error)
	CountByUserAndMood(dbc dbctx.Context, userID uuid.UUID, m types.MoodType) (int64, error)
	DistributionByUser(dbc dbctx.Context, userID uuid.UUID) (map[types.MoodType]int64, error)
	ExistsByID(dbc dbctx.Context, entryID uuid.UUID) (bool, error)
	Delete(dbc dbctx.Context, entryIDs []uuid.UUID) (int64, error)
}

type moodEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	repoLog := baseLog.With("repo", "MoodEntryRepo")
	return &moodEntryRepo{db: db, log: repoLog}
}

func (r *moodEntryRepo) Create(dbc dbctx.Context, entries []*types.MoodEntry) ([]*types.MoodEntry, error) {
	if len(entries) == 0 {
		return []*types.MoodEntry{}, nil
	}

	if err := dbc.DB(r.db).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateMood changes only the mood column. Date and owner never change after create.
func (r *moodEntryRepo) UpdateMood(dbc dbctx.Context, entryID uuid.UUID, m types.MoodType) error {
	res := dbc.DB(r.db).
		Model(&types.MoodEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]any{
			"mood":       m,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *moodEntryRepo) GetByID(dbc dbctx.Context, entryID uuid.UUID) (*types.MoodEntry, error) {
	var entry types.MoodEntry
	err := dbc.DB(r.db).
		Where("id = ?", entryID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *moodEntryRepo) GetByIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if len(entryIDs) == 0 {
		return results, nil
	}

	if err := dbc.DB(r.db).
		Where("id IN ?", entryIDs).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodEntryRepo) GetByUserAndDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := dbc.DB(r.db).
		Where("user_id = ? AND date = ?", userID, domainmood.Day(date)).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *moodEntryRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByUserBetween returns entries dated within [start, end], oldest first.
func (r *moodEntryRepo) ListByUserBetween(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := dbc.DB(r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, domainmood.Day(start), domainmood.Day(end)).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodEntryRepo) PageByUser(dbc dbctx.Context, userID uuid.UUID, page PageRequest) ([]*types.MoodEntry, int64, error) {
	page = page.Normalize()

	var total int64
	if err := dbc.DB(r.db).
		Model(&types.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	results := []*types.MoodEntry{}
	if total == 0 {
		return results, 0, nil
	}

	q := dbc.DB(r.db).Where("user_id = ?", userID)
	for _, clause := range page.orderClauses() {
		q = q.Order(clause)
	}
	if err := q.Offset(page.Offset()).Limit(page.Size).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *moodEntryRepo) CountByUserAndMood(dbc dbctx.Context, userID uuid.UUID, m types.MoodType) (int64, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.MoodEntry{}).
		Where("user_id = ? AND mood = ?", userID, m).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *moodEntryRepo) DistributionByUser(dbc dbctx.Context, userID uuid.UUID) (map[types.MoodType]int64, error) {
	var rows []struct {
		Mood  types.MoodType
		Total int64
	}
	if err := dbc.DB(r.db).
		Model(&types.MoodEntry{}).
		Select("mood, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("mood").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[types.MoodType]int64, len(rows))
	for _, row := range rows {
		out[row.Mood] = row.Total
	}
	return out, nil
}

func (r *moodEntryRepo) ExistsByID(dbc dbctx.Context, entryID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.MoodEntry{}).
		Where("id = ?", entryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *moodEntryRepo) Delete(dbc dbctx.Context, entryIDs []uuid.UUID) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}

	res := dbc.DB(r.db).
		Where("id IN ?", entryIDs).
		Delete(&types.MoodEntry{})
	return res.RowsAffected, res.Error
}
