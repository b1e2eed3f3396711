package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

// MoodEntryDTO is the wire form of a mood entry. Dates are YYYY-MM-DD.
type MoodEntryDTO struct {
	ID   *uuid.UUID `json:"id"`
	Date string     `json:"date,omitempty"`
	Mood string     `json:"mood,omitempty"`
}

func toMoodEntryDTO(e *types.MoodEntry) MoodEntryDTO {
	id := e.ID
	return MoodEntryDTO{ID: &id, Date: mood.FormatDay(e.Date), Mood: e.Mood.String()}
}

func toMoodEntryDTOs(entries []*types.MoodEntry) []MoodEntryDTO {
	out := make([]MoodEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toMoodEntryDTO(e))
	}
	return out
}

type TrendPointDTO struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Score int    `json:"score"`
}

type StatisticsDTO struct {
	StartDate             string          `json:"start_date"`
	EndDate               string          `json:"end_date"`
	TotalEntries          int             `json:"total_entries"`
	MoodDistribution      map[string]int  `json:"mood_distribution"`
	MostFrequentMood      string          `json:"most_frequent_mood,omitempty"`
	MostFrequentMoodCount int             `json:"most_frequent_mood_count"`
	AverageMoodScore      float64         `json:"average_mood_score"`
	CurrentStreak         int             `json:"current_streak"`
	CurrentStreakMood     string          `json:"current_streak_mood,omitempty"`
	LongestStreak         int             `json:"longest_streak"`
	LongestStreakMood     string          `json:"longest_streak_mood,omitempty"`
	CompletionRate        float64         `json:"completion_rate"`
	Trends                []TrendPointDTO `json:"trends"`
}

func toStatisticsDTO(s analytics.Snapshot) StatisticsDTO {
	dto := StatisticsDTO{
		StartDate:             mood.FormatDay(s.StartDate),
		EndDate:               mood.FormatDay(s.EndDate),
		TotalEntries:          s.TotalEntries,
		MoodDistribution:      moodCounts(s.Distribution),
		MostFrequentMood:      s.MostFrequentMood.String(),
		MostFrequentMoodCount: s.MostFrequentMoodCount,
		AverageMoodScore:      s.AverageScore,
		CurrentStreak:         s.CurrentStreak,
		CurrentStreakMood:     s.CurrentStreakMood.String(),
		LongestStreak:         s.LongestStreak,
		LongestStreakMood:     s.LongestStreakMood.String(),
		CompletionRate:        s.CompletionRate,
		Trends:                make([]TrendPointDTO, 0, len(s.Trends)),
	}
	for _, p := range s.Trends {
		dto.Trends = append(dto.Trends, TrendPointDTO{Date: mood.FormatDay(p.Date), Mood: p.Mood.String(), Score: p.Score})
	}
	return dto
}

type MonthlyStatisticsDTO struct {
	Period         string         `json:"period"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	TotalEntries   int            `json:"total_entries"`
	MoodCounts     map[string]int `json:"mood_counts"`
	MostCommonMood string         `json:"most_common_mood,omitempty"`
}

func toMonthlyDTO(s analytics.MonthlyStatistics) MonthlyStatisticsDTO {
	return MonthlyStatisticsDTO{
		Period:         s.Period,
		StartDate:      mood.FormatDay(s.StartDate),
		EndDate:        mood.FormatDay(s.EndDate),
		TotalEntries:   s.TotalEntries,
		MoodCounts:     moodCounts(s.Counts),
		MostCommonMood: s.MostCommonMood.String(),
	}
}

func moodCounts(in map[mood.MoodType]int) map[string]int {
	out := make(map[string]int, len(in))
	for m, c := range in {
		out[m.String()] = c
	}
	return out
}

type GoalProgressDTO struct {
	GoalID        *uuid.UUID `json:"goal_id,omitempty"`
	GoalType      string     `json:"goal_type,omitempty"`
	Target        int        `json:"target"`
	Completed     int        `json:"completed"`
	Percentage    int        `json:"percentage"`
	CurrentStreak int        `json:"current_streak"`
}

func toGoalProgressDTO(p analytics.GoalProgress) GoalProgressDTO {
	dto := GoalProgressDTO{
		GoalType:      string(p.GoalType),
		Target:        p.Target,
		Completed:     p.Completed,
		Percentage:    p.Percentage,
		CurrentStreak: p.CurrentStreak,
	}
	if p.HasGoal() {
		id := p.GoalID
		dto.GoalID = &id
	}
	return dto
}

func dateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, apierr.BadRequest("invalid_request", fmt.Errorf("%s is required", name))
	}
	t, err := mood.ParseDay(raw)
	if err != nil {
		return time.Time{}, apierr.BadRequest("invalid_request", err)
	}
	return t, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.BadRequest("invalid_request", fmt.Errorf("%s must be an integer", name))
	}
	return n, nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.BadRequest("invalid_id", errors.New("id must be a UUID"))
	}
	return id, nil
}
