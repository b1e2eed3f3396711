package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
	"github.com/yungbote/moodtracker-backend/internal/pkg/ctxutil"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

// Clock reports the current instant. Every "today" in the services comes from it.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func (c Clock) today() time.Time {
	return mood.Day(c.now())
}

var errAuthRequired = apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("authentication required"))

func requireUserID(ctx context.Context) (uuid.UUID, error) {
	uid := ctxutil.UserID(ctx)
	if uid == uuid.Nil {
		return uuid.Nil, errAuthRequired
	}
	return uid, nil
}

func checkRange(start, end time.Time) error {
	if mood.Day(end).Before(mood.Day(start)) {
		return apierr.Newf(http.StatusBadRequest, "invalid_range", "end date %s is before start date %s",
			mood.FormatDay(end), mood.FormatDay(start))
	}
	return nil
}
