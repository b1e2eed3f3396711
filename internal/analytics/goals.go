package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

const (
	AchievedMessage    = "Congratulations! You've achieved your goal!"
	NotAchievedMessage = "Keep going! You're making progress!"

	defaultGoalPoints = 25
)

type GoalProgress struct {
	GoalID        uuid.UUID
	GoalType      mood.GoalType
	Target        int
	Completed     int
	Percentage    int
	CurrentStreak int
}

func (p GoalProgress) HasGoal() bool { return p.GoalID != uuid.Nil }

// goalPoints awards points per unit of target plus a flat amount.
var goalPoints = map[mood.GoalType]struct{ perTarget, flat int }{
	mood.GoalHappyDays: {perTarget: 10},
	mood.GoalStreak:    {perTarget: 15},
	mood.GoalCustom:    {flat: 50},
}

// GoalPoints is the reward for achieving a goal of the given type and target.
func GoalPoints(t mood.GoalType, target int) int {
	rule, ok := goalPoints[t]
	if !ok {
		return defaultGoalPoints
	}
	return rule.perTarget*target + rule.flat
}

// Percentage uses integer division and is 0 for a non-positive target.
func Percentage(completed, target int) int {
	if target <= 0 {
		return 0
	}
	return completed * 100 / target
}

func Achieved(p GoalProgress) bool {
	return p.HasGoal() && p.Target > 0 && p.Completed >= p.Target
}

// EvaluateGoal measures progress toward goal. HAPPY_DAYS counts happy days in
// the current Monday to Sunday week; STREAK uses the current happy streak.
// Other goal types are tracked manually and report no progress.
func EvaluateGoal(goal *mood.MoodGoal, entries []*mood.MoodEntry, today time.Time) GoalProgress {
	if goal == nil {
		return GoalProgress{}
	}
	p := GoalProgress{
		GoalID:   goal.ID,
		GoalType: goal.Type,
		Target:   goal.Target,
	}
	switch goal.Type {
	case mood.GoalHappyDays:
		weekStart := mood.StartOfWeek(today)
		p.Completed = countMood(Filter(entries, weekStart, weekStart.AddDate(0, 0, 6)), mood.MoodHappy)
	case mood.GoalStreak:
		p.Completed = CurrentStreakFor(entries, mood.MoodHappy, today)
		p.CurrentStreak = p.Completed
	}
	p.Percentage = Percentage(p.Completed, p.Target)
	return p
}

// HasReachedStreakTarget reports whether the current happy streak is at least target.
func HasReachedStreakTarget(entries []*mood.MoodEntry, target int, today time.Time) bool {
	if target <= 0 {
		return false
	}
	return CurrentStreakFor(entries, mood.MoodHappy, today) >= target
}
