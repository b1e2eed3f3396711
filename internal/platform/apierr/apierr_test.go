package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/yungbote/moodtracker-backend/internal/pkg/errors"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"api error", BadRequest("idexists", errors.New("x")), http.StatusBadRequest, "idexists"},
		{"wrapped api error", fmt.Errorf("ctx: %w", Conflict("duplicate_entry", nil)), http.StatusConflict, "duplicate_entry"},
		{"not found sentinel", fmt.Errorf("entry: %w", pkgerrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict sentinel", pkgerrors.ErrConflict, http.StatusConflict, "conflict"},
		{"marked sentinel", pkgerrors.Mark(pkgerrors.ErrInvalidArgument, "bad %s", "flag"), http.StatusBadRequest, "invalid_argument"},
		{"zero status", &Error{}, http.StatusInternalServerError, "internal_error"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := Classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "boom", New(500, "x", errors.New("boom")).Error())
	assert.Equal(t, "idnull", New(400, "idnull", nil).Error())
	assert.Equal(t, "api error (404)", New(404, "", nil).Error())
}
