package validate

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

type sample struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Mood   string `json:"mood" validate:"required,oneof=HAPPY SAD"`
	Target int    `json:"target" validate:"gte=1"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, Struct(&sample{Date: "2024-01-01", Mood: "HAPPY", Target: 3}))
}

func TestStructReportsEveryField(t *testing.T) {
	err := Struct(&sample{Date: "01/01/2024", Mood: "GLAD", Email: "nope"})
	require.Error(t, err)

	var ae *apierr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, Code, ae.Code)
	assert.Equal(t,
		"date must match the layout 2006-01-02; mood must be one of: HAPPY SAD; target must be greater than or equal to 1; email must be a valid email address",
		ae.Error())
}

func TestStructRequired(t *testing.T) {
	err := Struct(&sample{Target: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date is required")
	assert.Contains(t, err.Error(), "mood is required")
}
