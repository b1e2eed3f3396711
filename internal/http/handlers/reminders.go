package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/http/response"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type ReminderHandler struct {
	reminderService services.MoodReminderService
}

func NewReminderHandler(reminderService services.MoodReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

var errEnabledRequired = errors.New("enabled is required")

type PreferencesDTO struct {
	DailyReminderEnabled bool    `json:"daily_reminder_enabled"`
	DailyReminderTime    string  `json:"daily_reminder_time"`
	WeeklySummaryEnabled bool    `json:"weekly_summary_enabled"`
	WeeklySummaryDay     string  `json:"weekly_summary_day"`
	NotificationType     string  `json:"notification_type"`
	CustomMessage        *string `json:"custom_message,omitempty"`
}

func toPreferencesDTO(p *types.ReminderPreferences) PreferencesDTO {
	return PreferencesDTO{
		DailyReminderEnabled: p.DailyReminderEnabled,
		DailyReminderTime:    p.DailyReminderTime.String(),
		WeeklySummaryEnabled: p.WeeklySummaryEnabled,
		WeeklySummaryDay:     p.WeeklySummaryDay,
		NotificationType:     p.NotificationType,
		CustomMessage:        p.CustomMessage,
	}
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req services.ReminderInput
	if !bindBody(c, &req) {
		return
	}
	r, err := h.reminderService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, "", r)
}

func (h *ReminderHandler) List(c *gin.Context) {
	list, err := h.reminderService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (h *ReminderHandler) SetEnabled(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", errEnabledRequired))
		return
	}
	if err := h.reminderService.SetEnabled(c.Request.Context(), id, *req.Enabled); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"id": id, "enabled": *req.Enabled})
}

func (h *ReminderHandler) TriggerDaily(c *gin.Context) {
	r, err := h.reminderService.TriggerDaily(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, r)
}

func (h *ReminderHandler) Dismiss(c *gin.Context) {
	if err := h.reminderService.Dismiss(c.Request.Context()); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *ReminderHandler) Complete(c *gin.Context) {
	if err := h.reminderService.MarkCompleted(c.Request.Context()); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *ReminderHandler) GetPreferences(c *gin.Context) {
	p, err := h.reminderService.GetPreferences(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toPreferencesDTO(p))
}

func (h *ReminderHandler) UpdatePreferences(c *gin.Context) {
	var req services.PreferencesInput
	if !bindBody(c, &req) {
		return
	}
	p, err := h.reminderService.UpdatePreferences(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toPreferencesDTO(p))
}

func (h *ReminderHandler) Enabled(c *gin.Context) {
	ok, err := h.reminderService.RemindersEnabled(c.Request.Context())
	respondFlag(c, "enabled", ok, err)
}

func (h *ReminderHandler) CustomMessage(c *gin.Context) {
	msg, err := h.reminderService.CustomMessage(c.Request.Context())
	respondMessage(c, msg, err)
}

func (h *ReminderHandler) WeeklySummaryDue(c *gin.Context) {
	ok, err := h.reminderService.IsTimeForWeeklySummary(c.Request.Context())
	respondFlag(c, "due", ok, err)
}

func (h *ReminderHandler) WeeklySummary(c *gin.Context) {
	msg, err := h.reminderService.WeeklySummary(c.Request.Context())
	respondMessage(c, msg, err)
}

func (h *ReminderHandler) StreakTarget(c *gin.Context) {
	target, err := intQuery(c, "target", 7)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ok, err := h.reminderService.HasReachedStreakTarget(c.Request.Context(), target)
	respondFlag(c, "reached", ok, err)
}

func (h *ReminderHandler) Motivation(c *gin.Context) {
	msg, err := h.reminderService.MotivationalMessage(c.Request.Context())
	respondMessage(c, msg, err)
}

func respondFlag(c *gin.Context, key string, v bool, err error) {
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{key: v})
}
