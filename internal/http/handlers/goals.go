package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtracker-backend/internal/http/response"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type GoalHandler struct {
	goalService services.MoodGoalService
}

func NewGoalHandler(goalService services.MoodGoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req services.GoalInput
	if !bindBody(c, &req) {
		return
	}
	goal, err := h.goalService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, "", goal)
}

func (h *GoalHandler) CreateBatch(c *gin.Context) {
	var req []services.GoalInput
	if !bindBody(c, &req) {
		return
	}
	goals, err := h.goalService.CreateBatch(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, "", goals)
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, goals)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req services.GoalPatch
	if !bindBody(c, &req) {
		return
	}
	goal, err := h.goalService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, goal)
}

func (h *GoalHandler) Progress(c *gin.Context) {
	p, err := h.goalService.Progress(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toGoalProgressDTO(p))
}

func (h *GoalHandler) CheckAchievement(c *gin.Context) {
	res, err := h.goalService.CheckAchievement(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *GoalHandler) Reminder(c *gin.Context) {
	msg, err := h.goalService.TriggerReminder(c.Request.Context())
	respondMessage(c, msg, err)
}

func (h *GoalHandler) History(c *gin.Context) {
	hist, err := h.goalService.History(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, hist)
}

func (h *GoalHandler) Suggestions(c *gin.Context) {
	tips, err := h.goalService.Suggestions(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"suggestions": nonNil(tips)})
}

func (h *GoalHandler) Share(c *gin.Context) {
	msg, err := h.goalService.ShareContent(c.Request.Context())
	respondMessage(c, msg, err)
}

func (h *GoalHandler) StreakBreak(c *gin.Context) {
	msg, err := h.goalService.StreakBreak(c.Request.Context())
	respondMessage(c, msg, err)
}

func respondMessage(c *gin.Context, msg string, err error) {
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": msg})
}
