package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/platform/validate"
)

// GoalInput describes a goal to create.
type GoalInput struct {
	Type        types.GoalType `json:"goal_type" validate:"required,oneof=HAPPY_DAYS STREAK CUSTOM"`
	Target      int            `json:"target" validate:"gte=1,lte=366"`
	Timeframe   string         `json:"timeframe" validate:"omitempty,max=32"`
	Description string         `json:"description" validate:"omitempty,max=255"`
}

// GoalPatch holds the mutable goal fields. Nil fields are left alone.
type GoalPatch struct {
	Target      *int    `json:"target" validate:"omitempty,gte=1,lte=366"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Active      *bool   `json:"active"`
}

type AchievementResult struct {
	Achieved           bool      `json:"achieved"`
	GoalCompleted      bool      `json:"goal_completed"`
	PointsEarned       int       `json:"points_earned"`
	AchievementMessage string    `json:"achievement_message"`
	GoalID             uuid.UUID `json:"goal_id,omitempty"`
}

type GoalStatistics struct {
	TotalGoalsCreated int     `json:"total_goals_created"`
	ActiveGoals       int     `json:"active_goals"`
	CompletionRate    float64 `json:"completion_rate"`
}

type GoalHistory struct {
	CompletedGoals []*types.MoodGoal `json:"completed_goals"`
	TotalCompleted int               `json:"total_completed"`
	Statistics     GoalStatistics    `json:"statistics"`
	TotalPoints    int               `json:"total_points"`
}

type MoodGoalService interface {
	Create(ctx context.Context, in GoalInput) (*types.MoodGoal, error)
	CreateBatch(ctx context.Context, in []GoalInput) ([]*types.MoodGoal, error)
	List(ctx context.Context) ([]*types.MoodGoal, error)
	Update(ctx context.Context, goalID uuid.UUID, patch GoalPatch) (*types.MoodGoal, error)
	Progress(ctx context.Context) (analytics.GoalProgress, error)
	CheckAchievement(ctx context.Context) (AchievementResult, error)
	TriggerReminder(ctx context.Context) (string, error)
	History(ctx context.Context) (GoalHistory, error)
	Suggestions(ctx context.Context) ([]string, error)
	ShareContent(ctx context.Context) (string, error)
	StreakBreak(ctx context.Context) (string, error)
}

type moodGoalService struct {
	db              *gorm.DB
	log             *logger.Logger
	txr             datadb.TxRunner
	goalRepo        repos.MoodGoalRepo
	achievementRepo repos.GoalAchievementRepo
	entryRepo       repos.MoodEntryRepo
	clock           Clock
}

func NewMoodGoalService(
	db *gorm.DB,
	log *logger.Logger,
	goalRepo repos.MoodGoalRepo,
	achievementRepo repos.GoalAchievementRepo,
	entryRepo repos.MoodEntryRepo,
	clock Clock,
) MoodGoalService {
	serviceLog := log.With("service", "MoodGoalService")
	return &moodGoalService{
		db:              db,
		log:             serviceLog,
		txr:             datadb.NewTxRunner(db),
		goalRepo:        goalRepo,
		achievementRepo: achievementRepo,
		entryRepo:       entryRepo,
		clock:           clock,
	}
}

var (
	errGoalNotFound   = apierr.NotFound("not_found", errors.New("mood goal not found"))
	errNoActiveGoal   = apierr.NotFound("no_active_goal", errors.New("no active mood goal"))
	errEmptyGoalBatch = apierr.BadRequest(validate.Code, errors.New("at least one goal is required"))
)

func (in GoalInput) normalize() GoalInput {
	in.Type = types.GoalType(strings.ToUpper(strings.TrimSpace(string(in.Type))))
	in.Timeframe = strings.TrimSpace(in.Timeframe)
	if in.Timeframe == "" {
		in.Timeframe = "weekly"
	}
	return in
}

func (s *moodGoalService) Create(ctx context.Context, in GoalInput) (*types.MoodGoal, error) {
	goals, err := s.CreateBatch(ctx, []GoalInput{in})
	if err != nil {
		return nil, err
	}
	return goals[0], nil
}

func (s *moodGoalService) CreateBatch(ctx context.Context, in []GoalInput) ([]*types.MoodGoal, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, errEmptyGoalBatch
	}
	goals := make([]*types.MoodGoal, 0, len(in))
	for _, raw := range in {
		g := raw.normalize()
		if err := validate.Struct(g); err != nil {
			return nil, err
		}
		goals = append(goals, &types.MoodGoal{
			UserID:      userID,
			Type:        g.Type,
			Target:      g.Target,
			Timeframe:   g.Timeframe,
			Description: g.Description,
			Active:      true,
		})
	}
	var created []*types.MoodGoal
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		var err error
		created, err = s.goalRepo.Create(dbc, goals)
		if err != nil {
			return fmt.Errorf("create mood goals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Mood goals created", "user_id", userID, "count", len(created))
	return created, nil
}

func (s *moodGoalService) List(ctx context.Context) ([]*types.MoodGoal, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.goalRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
}

func (s *moodGoalService) Update(ctx context.Context, goalID uuid.UUID, patch GoalPatch) (*types.MoodGoal, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Target != nil {
		updates["target"] = *patch.Target
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Active != nil {
		updates["active"] = *patch.Active
	}

	var out *types.MoodGoal
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		goal, err := s.goalRepo.GetByID(dbc, userID, goalID)
		if err != nil {
			return err
		}
		if goal == nil {
			return errGoalNotFound
		}
		if err := s.goalRepo.Update(dbc, goalID, updates); err != nil {
			if datadb.IsNotFound(err) {
				return errGoalNotFound
			}
			return fmt.Errorf("update mood goal: %w", err)
		}
		out, err = s.goalRepo.GetByID(dbc, userID, goalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// activeProgress evaluates the oldest active goal. Progress is empty when
// the user has no active goal.
func (s *moodGoalService) activeProgress(dbc dbctx.Context, userID uuid.UUID) (*types.MoodGoal, analytics.GoalProgress, error) {
	active, err := s.goalRepo.ListActiveByUser(dbc, userID)
	if err != nil {
		return nil, analytics.GoalProgress{}, err
	}
	if len(active) == 0 {
		return nil, analytics.GoalProgress{}, nil
	}
	entries, err := s.entryRepo.ListByUser(dbc, userID)
	if err != nil {
		return nil, analytics.GoalProgress{}, err
	}
	goal := active[0]
	return goal, analytics.EvaluateGoal(goal, entries, s.clock.today()), nil
}

func (s *moodGoalService) Progress(ctx context.Context) (analytics.GoalProgress, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return analytics.GoalProgress{}, err
	}
	_, p, err := s.activeProgress(dbctx.Context{Ctx: ctx}, userID)
	return p, err
}

// CheckAchievement completes the active goal once its target is met and
// books the points for it.
func (s *moodGoalService) CheckAchievement(ctx context.Context) (AchievementResult, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return AchievementResult{}, err
	}
	var (
		res      AchievementResult
		goalType types.GoalType
	)
	err = s.txr.InTx(ctx, func(dbc dbctx.Context) error {
		goal, p, err := s.activeProgress(dbc, userID)
		if err != nil {
			return err
		}
		if goal == nil {
			return errNoActiveGoal
		}
		res.GoalID = goal.ID
		goalType = goal.Type
		if !analytics.Achieved(p) {
			res.AchievementMessage = analytics.NotAchievedMessage
			return nil
		}
		now := s.clock.now().UTC()
		if err := s.goalRepo.MarkCompleted(dbc, goal.ID, now); err != nil {
			return fmt.Errorf("complete mood goal: %w", err)
		}
		points := analytics.GoalPoints(goal.Type, goal.Target)
		if _, err := s.achievementRepo.Create(dbc, &types.GoalAchievement{
			UserID:     userID,
			GoalID:     goal.ID,
			GoalType:   goal.Type,
			Target:     goal.Target,
			Points:     points,
			AchievedAt: now,
		}); err != nil {
			return fmt.Errorf("record goal achievement: %w", err)
		}
		res.Achieved = true
		res.GoalCompleted = true
		res.PointsEarned = points
		res.AchievementMessage = analytics.AchievedMessage
		return nil
	})
	if err != nil {
		return AchievementResult{}, err
	}
	if res.Achieved {
		observability.Current().IncGoalAchieved(string(goalType))
		s.log.Info("Mood goal achieved", "user_id", userID, "goal_id", res.GoalID, "points", res.PointsEarned)
	}
	return res, nil
}

func (s *moodGoalService) TriggerReminder(ctx context.Context) (string, error) {
	p, err := s.Progress(ctx)
	if err != nil {
		return "", err
	}
	return analytics.GoalReminderMessage(p), nil
}

func (s *moodGoalService) History(ctx context.Context) (GoalHistory, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return GoalHistory{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	goals, err := s.goalRepo.ListByUser(dbc, userID)
	if err != nil {
		return GoalHistory{}, err
	}
	points, err := s.achievementRepo.TotalPointsByUser(dbc, userID)
	if err != nil {
		return GoalHistory{}, err
	}

	h := GoalHistory{CompletedGoals: []*types.MoodGoal{}, TotalPoints: points}
	for _, g := range goals {
		if g.Completed {
			h.CompletedGoals = append(h.CompletedGoals, g)
		}
		if g.Active {
			h.Statistics.ActiveGoals++
		}
	}
	h.TotalCompleted = len(h.CompletedGoals)
	h.Statistics.TotalGoalsCreated = len(goals)
	if len(goals) > 0 {
		h.Statistics.CompletionRate = float64(h.TotalCompleted) / float64(len(goals)) * 100
	}
	return h, nil
}

func (s *moodGoalService) Suggestions(ctx context.Context) ([]string, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, err
	}
	return analytics.GoalSuggestions(entries, s.clock.today()), nil
}

func (s *moodGoalService) ShareContent(ctx context.Context) (string, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return "", err
	}
	dbc := dbctx.Context{Ctx: ctx}
	_, p, err := s.activeProgress(dbc, userID)
	if err != nil {
		return "", err
	}
	points, err := s.achievementRepo.TotalPointsByUser(dbc, userID)
	if err != nil {
		return "", err
	}
	return analytics.ShareMessage(p, points), nil
}

func (s *moodGoalService) StreakBreak(ctx context.Context) (string, error) {
	if _, err := requireUserID(ctx); err != nil {
		return "", err
	}
	return analytics.StreakBreakMessage, nil
}
