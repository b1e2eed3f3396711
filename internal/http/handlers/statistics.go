package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtracker-backend/internal/analytics"
	"github.com/yungbote/moodtracker-backend/internal/http/response"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type StatisticsHandler struct {
	entryService services.MoodEntryService
}

func NewStatisticsHandler(entryService services.MoodEntryService) *StatisticsHandler {
	return &StatisticsHandler{entryService: entryService}
}

func (h *StatisticsHandler) respond(c *gin.Context, snap analytics.Snapshot, err error) {
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toStatisticsDTO(snap))
}

func (h *StatisticsHandler) Range(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	snap, err := h.entryService.StatisticsBetween(c.Request.Context(), start, end)
	h.respond(c, snap, err)
}

func (h *StatisticsHandler) CurrentMonth(c *gin.Context) {
	snap, err := h.entryService.StatisticsCurrentMonth(c.Request.Context())
	h.respond(c, snap, err)
}

func (h *StatisticsHandler) LastWeek(c *gin.Context) {
	snap, err := h.entryService.StatisticsLastWeek(c.Request.Context())
	h.respond(c, snap, err)
}
