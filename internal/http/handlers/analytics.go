package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/http/response"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.MoodAnalyticsService
}

func NewAnalyticsHandler(analyticsService services.MoodAnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	stats, err := h.analyticsService.MonthlyStatistics(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toMonthlyDTO(stats))
}

type trendPointDTO struct {
	Date      string  `json:"date"`
	DayNumber int     `json:"day_number"`
	Mood      *string `json:"mood"`
	Score     *int    `json:"score"`
}

func (h *AnalyticsHandler) Trend(c *gin.Context) {
	days, err := intQuery(c, "days", 30)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	trend, err := h.analyticsService.TrendForLastDays(c.Request.Context(), days)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	points := make([]trendPointDTO, 0, len(trend.DataPoints))
	for _, p := range trend.DataPoints {
		dp := trendPointDTO{Date: mood.FormatDay(p.Date), DayNumber: p.DayNumber, Score: p.Score}
		if p.Mood != nil {
			m := p.Mood.String()
			dp.Mood = &m
		}
		points = append(points, dp)
	}
	response.RespondOK(c, gin.H{
		"period":      trend.Period,
		"total_days":  trend.TotalDays,
		"start_date":  mood.FormatDay(trend.StartDate),
		"end_date":    mood.FormatDay(trend.EndDate),
		"data_points": points,
	})
}

func (h *AnalyticsHandler) Streaks(c *gin.Context) {
	streaks, err := h.analyticsService.StreakInformation(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := gin.H{}
	for _, s := range streaks {
		key := strings.ToLower(s.Mood.String())
		out["current_"+key+"_streak"] = s.Current
		out["longest_"+key+"_streak"] = s.Longest
	}
	response.RespondOK(c, out)
}

func (h *AnalyticsHandler) Export(c *gin.Context) {
	month := c.Query("month")
	csv, err := h.analyticsService.ExportMonth(c.Request.Context(), month)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"mood-data-%s.csv\"", month))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (h *AnalyticsHandler) Compare(c *gin.Context) {
	cmp, err := h.analyticsService.ComparePatterns(c.Request.Context(), c.Query("period1"), c.Query("period2"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"period1":            toMonthlyDTO(cmp.Period1),
		"period2":            toMonthlyDTO(cmp.Period2),
		"percentage_changes": cmp.PercentageChanges,
		"improvement":        cmp.Improvement,
	})
}

func (h *AnalyticsHandler) Insights(c *gin.Context) {
	ins, err := h.analyticsService.Insights(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"insights":        nonNil(ins.Insights),
		"recommendations": nonNil(ins.Recommendations),
	})
}

func (h *AnalyticsHandler) Report(c *gin.Context) {
	report, err := h.analyticsService.SummaryReport(c.Request.Context(), c.Query("start_period"), c.Query("end_period"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.String(http.StatusOK, report)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
