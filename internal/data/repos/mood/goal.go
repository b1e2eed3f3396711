package mood

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type MoodGoalRepo interface {
	Create(dbc dbctx.Context, goals []*types.MoodGoal) ([]*types.MoodGoal, error)
	GetByID(dbc dbctx.Context, userID, goalID uuid.UUID) (*types.MoodGoal, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodGoal, error)
	ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodGoal, error)
	Update(dbc dbctx.Context, goalID uuid.UUID, updates map[string]interface{}) error
	MarkCompleted(dbc dbctx.Context, goalID uuid.UUID, at time.Time) error
}

type moodGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodGoalRepo(db *gorm.DB, baseLog *logger.Logger) MoodGoalRepo {
	repoLog := baseLog.With("repo", "MoodGoalRepo")
	return &moodGoalRepo{db: db, log: repoLog}
}

func (r *moodGoalRepo) Create(dbc dbctx.Context, goals []*types.MoodGoal) ([]*types.MoodGoal, error) {
	if len(goals) == 0 {
		return []*types.MoodGoal{}, nil
	}

	if err := dbc.DB(r.db).Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// GetByID returns nil when the goal does not exist or belongs to another user.
func (r *moodGoalRepo) GetByID(dbc dbctx.Context, userID, goalID uuid.UUID) (*types.MoodGoal, error) {
	var goal types.MoodGoal
	err := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *moodGoalRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodGoal, error) {
	var results []*types.MoodGoal
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListActiveByUser returns active goals oldest first; the first one drives progress.
func (r *moodGoalRepo) ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MoodGoal, error) {
	var results []*types.MoodGoal
	if err := dbc.DB(r.db).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodGoalRepo) Update(dbc dbctx.Context, goalID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := dbc.DB(r.db).
		Model(&types.MoodGoal{}).
		Where("id = ?", goalID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *moodGoalRepo) MarkCompleted(dbc dbctx.Context, goalID uuid.UUID, at time.Time) error {
	return r.Update(dbc, goalID, map[string]interface{}{
		"completed":    true,
		"active":       false,
		"completed_at": at,
	})
}
