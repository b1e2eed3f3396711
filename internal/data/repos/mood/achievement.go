package mood

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

type GoalAchievementRepo interface {
	Create(dbc dbctx.Context, achievement *types.GoalAchievement) (*types.GoalAchievement, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.GoalAchievement, error)
	TotalPointsByUser(dbc dbctx.Context, userID uuid.UUID) (int, error)
}

type goalAchievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalAchievementRepo(db *gorm.DB, baseLog *logger.Logger) GoalAchievementRepo {
	repoLog := baseLog.With("repo", "GoalAchievementRepo")
	return &goalAchievementRepo{db: db, log: repoLog}
}

func (r *goalAchievementRepo) Create(dbc dbctx.Context, achievement *types.GoalAchievement) (*types.GoalAchievement, error) {
	if err := dbc.DB(r.db).Create(achievement).Error; err != nil {
		return nil, err
	}
	return achievement, nil
}

func (r *goalAchievementRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.GoalAchievement, error) {
	var results []*types.GoalAchievement
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("achieved_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *goalAchievementRepo) TotalPointsByUser(dbc dbctx.Context, userID uuid.UUID) (int, error) {
	var total int64
	if err := dbc.DB(r.db).
		Model(&types.GoalAchievement{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}
