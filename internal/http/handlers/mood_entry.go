package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/http/response"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type MoodEntryHandler struct {
	entryService services.MoodEntryService
}

func NewMoodEntryHandler(entryService services.MoodEntryService) *MoodEntryHandler {
	return &MoodEntryHandler{entryService: entryService}
}

// fields converts a request body. Empty strings count as absent.
func (dto MoodEntryDTO) fields() (services.MoodEntryFields, error) {
	in := services.MoodEntryFields{ID: dto.ID}
	if d := strings.TrimSpace(dto.Date); d != "" {
		t, err := mood.ParseDay(d)
		if err != nil {
			return services.MoodEntryFields{}, apierr.BadRequest("invalid_request", err)
		}
		in.Date = &t
	}
	if m := strings.TrimSpace(dto.Mood); m != "" {
		mt := types.MoodType(strings.ToUpper(m))
		in.Mood = &mt
	}
	return in, nil
}

func bindEntry(c *gin.Context) (services.MoodEntryFields, error) {
	var dto MoodEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		return services.MoodEntryFields{}, apierr.BadRequest("invalid_request", err)
	}
	return dto.fields()
}

// bindEntryForID also checks that the body id matches the path id.
func bindEntryForID(c *gin.Context) (uuid.UUID, services.MoodEntryFields, error) {
	id, err := uuidParam(c, "id")
	if err != nil {
		return uuid.Nil, services.MoodEntryFields{}, err
	}
	in, err := bindEntry(c)
	if err != nil {
		return uuid.Nil, services.MoodEntryFields{}, err
	}
	if in.ID == nil {
		return uuid.Nil, services.MoodEntryFields{}, apierr.BadRequest("idnull", errors.New("invalid id"))
	}
	if *in.ID != id {
		return uuid.Nil, services.MoodEntryFields{}, apierr.BadRequest("idinvalid", errors.New("body id does not match path id"))
	}
	return id, in, nil
}

func (h *MoodEntryHandler) Create(c *gin.Context) {
	in, err := bindEntry(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	created, err := h.entryService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, "/api/mood-entries/"+created.ID.String(), toMoodEntryDTO(created))
}

func (h *MoodEntryHandler) Update(c *gin.Context) {
	id, in, err := bindEntryForID(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	updated, err := h.entryService.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toMoodEntryDTO(updated))
}

func (h *MoodEntryHandler) PartialUpdate(c *gin.Context) {
	id, in, err := bindEntryForID(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	updated, err := h.entryService.PartialUpdate(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toMoodEntryDTO(updated))
}

func (h *MoodEntryHandler) List(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entries, total, err := h.entryService.ListForCurrentUser(c.Request.Context(), page)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	setPaginationHeaders(c, page, total)
	response.RespondOK(c, toMoodEntryDTOs(entries))
}

func (h *MoodEntryHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	e, err := h.entryService.FindOne(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toMoodEntryDTO(e))
}

func (h *MoodEntryHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *MoodEntryHandler) ByDate(c *gin.Context) {
	date, err := dateQuery(c, "date")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	e, err := h.entryService.FindByDate(c.Request.Context(), date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toMoodEntryDTO(e))
}

func (h *MoodEntryHandler) Range(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entries, err := h.entryService.FindBetween(c.Request.Context(), start, end)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toMoodEntryDTOs(entries))
}

func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	start, err := dateQuery(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateQuery(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
