package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/moodtracker-backend/internal/http/handlers"
	httpMW "github.com/yungbote/moodtracker-backend/internal/http/middleware"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

var routerNow = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	clock := services.Clock(func() time.Time { return routerNow })

	userRepo := repos.NewUserRepo(tx, log)
	entryRepo := repos.NewMoodEntryRepo(tx, log)
	authService := services.NewAuthService(tx, log, userRepo, repos.NewUserTokenRepo(tx, log), "router-secret", time.Hour, 24*time.Hour, clock)
	entryService := services.NewMoodEntryService(tx, log, entryRepo, clock)

	return NewRouter(RouterConfig{
		Log:               log,
		Metrics:           observability.NewMetrics(),
		AuthHandler:       httpH.NewAuthHandler(authService),
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, authService),
		UserHandler:       httpH.NewUserHandler(services.NewUserService(tx, log, userRepo)),
		MoodEntryHandler:  httpH.NewMoodEntryHandler(entryService),
		StatisticsHandler: httpH.NewStatisticsHandler(entryService),
		AnalyticsHandler:  httpH.NewAnalyticsHandler(services.NewMoodAnalyticsService(tx, log, entryRepo, clock)),
		GoalHandler: httpH.NewGoalHandler(services.NewMoodGoalService(tx, log,
			repos.NewMoodGoalRepo(tx, log), repos.NewGoalAchievementRepo(tx, log), entryRepo, clock)),
		ReminderHandler: httpH.NewReminderHandler(services.NewMoodReminderService(tx, log,
			repos.NewMoodReminderRepo(tx, log), repos.NewReminderPreferencesRepo(tx, log),
			repos.NewReminderDismissalRepo(tx, log), entryRepo, clock)),
		HealthHandler: httpH.NewHealthHandler(nil),
	})
}

type client struct {
	t     *testing.T
	r     *gin.Engine
	token string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}](t, rec).Error.Code
}

func signIn(t *testing.T, r *gin.Engine, email string) *client {
	t.Helper()
	c := &client{t: t, r: r}
	rec := c.do(http.MethodPost, "/api/register", map[string]string{
		"email": email, "password": "s3cret-pass", "first_name": "Mo", "last_name": "Od",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/login", map[string]string{"email": email, "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tokens := decode[map[string]any](t, rec)
	c.token = tokens["access_token"].(string)
	return c
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)
	c := &client{t: t, r: r}

	rec := c.do(http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	c := &client{t: t, r: r}

	rec := c.do(http.MethodGet, "/api/mood-entries", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))

	c.token = "not-a-jwt"
	rec = c.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoints(t *testing.T) {
	r := newTestRouter(t)
	c := signIn(t, r, "router-me@example.com")

	rec := c.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode[map[string]map[string]any](t, rec)["me"]
	assert.Equal(t, "router-me@example.com", me["email"])
	assert.Equal(t, "Mo", me["first_name"])
	assert.NotContains(t, me, "password")

	rec = c.do(http.MethodPatch, "/api/me", map[string]string{"first_name": " Ada ", "last_name": "Lovelace"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me = decode[map[string]map[string]any](t, rec)["me"]
	assert.Equal(t, "Ada", me["first_name"])
	assert.Equal(t, "Lovelace", me["last_name"])

	rec = c.do(http.MethodPatch, "/api/me", map[string]string{"first_name": "", "last_name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))
}

func TestMoodEntryEndpoints(t *testing.T) {
	r := newTestRouter(t)
	c := signIn(t, r, "router-entries@example.com")

	rec := c.do(http.MethodPost, "/api/mood-entries", map[string]string{"date": "2024-01-01", "mood": "HAPPY"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[httpH.MoodEntryDTO](t, rec)
	require.NotNil(t, created.ID)
	assert.Equal(t, "2024-01-01", created.Date)
	assert.Equal(t, "/api/mood-entries/"+created.ID.String(), rec.Header().Get("Location"))

	rec = c.do(http.MethodPost, "/api/mood-entries", map[string]string{"date": "2024-01-01", "mood": "SAD"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_entry", errorCode(t, rec))

	rec = c.do(http.MethodPost, "/api/mood-entries", map[string]string{"date": "01/02/2024", "mood": "SAD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, d := range []string{"2024-01-02", "2024-01-03"} {
		m := "HAPPY"
		if d == "2024-01-03" {
			m = "SAD"
		}
		rec = c.do(http.MethodPost, "/api/mood-entries", map[string]string{"date": d, "mood": m})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/api/mood-entries?page=0&size=2&sort=date,asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Total-Count"))
	link := rec.Header().Get("Link")
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, `rel="last"`)
	assert.NotContains(t, link, `rel="prev"`)
	page := decode[[]httpH.MoodEntryDTO](t, rec)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-01-01", page[0].Date)

	path := "/api/mood-entries/" + created.ID.String()
	rec = c.do(http.MethodPut, path, map[string]string{"date": "2024-01-01", "mood": "NEUTRAL"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "idnull", errorCode(t, rec))

	rec = c.do(http.MethodPut, path, map[string]string{"id": "7f1c4a8e-5b7c-4a66-9d1c-111111111111", "date": "2024-01-01", "mood": "NEUTRAL"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "idinvalid", errorCode(t, rec))

	rec = c.do(http.MethodPatch, path, map[string]string{"id": created.ID.String(), "mood": "neutral"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "NEUTRAL", decode[httpH.MoodEntryDTO](t, rec).Mood)

	rec = c.do(http.MethodGet, "/api/mood-entries/by-date?date=2024-01-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SAD", decode[httpH.MoodEntryDTO](t, rec).Mood)

	rec = c.do(http.MethodGet, "/api/mood-statistics?start=2024-01-01&end=2024-01-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[httpH.StatisticsDTO](t, rec)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Len(t, stats.Trends, 3)

	rec = c.do(http.MethodGet, "/api/mood-statistics?start=2024-01-03&end=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_range", errorCode(t, rec))

	rec = c.do(http.MethodGet, "/api/mood-analytics/export?month=2024-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, "date,mood\n2024-01-01,NEUTRAL\n2024-01-02,HAPPY\n2024-01-03,SAD\n", rec.Body.String())

	rec = c.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/mood-entries/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoalAndReminderEndpoints(t *testing.T) {
	r := newTestRouter(t)
	c := signIn(t, r, "router-goals@example.com")

	rec := c.do(http.MethodPost, "/api/mood-goals", map[string]any{"goal_type": "STREAK", "target": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, d := range []string{"2024-03-12", "2024-03-13"} {
		rec = c.do(http.MethodPost, "/api/mood-entries", map[string]string{"date": d, "mood": "HAPPY"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = c.do(http.MethodGet, "/api/mood-goals/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	progress := decode[map[string]any](t, rec)
	assert.EqualValues(t, 100, progress["percentage"])

	rec = c.do(http.MethodPost, "/api/mood-goals/check-achievement", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[services.AchievementResult](t, rec)
	assert.True(t, res.Achieved)
	assert.Equal(t, 30, res.PointsEarned)

	rec = c.do(http.MethodPost, "/api/mood-reminders/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[services.DailyReminder](t, rec).Due)

	rec = c.do(http.MethodGet, "/api/mood-reminders/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := decode[httpH.PreferencesDTO](t, rec)
	assert.Equal(t, "18:00:00", prefs.DailyReminderTime)

	rec = c.do(http.MethodGet, "/api/mood-reminders/streak-target?target=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"reached": true}, decode[map[string]bool](t, rec))
}

func TestRefreshIsPublic(t *testing.T) {
	r := newTestRouter(t)
	c := &client{t: t, r: r}
	rec := c.do(http.MethodPost, "/api/register", map[string]string{
		"email": "router-refresh@example.com", "password": "s3cret-pass", "first_name": "R", "last_name": "F",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = c.do(http.MethodPost, "/api/login", map[string]string{"email": "router-refresh@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decode[map[string]any](t, rec)

	rec = c.do(http.MethodPost, "/api/refresh", map[string]any{"refresh_token": tokens["refresh_token"]})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/refresh", map[string]any{"refresh_token": tokens["refresh_token"]})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "refresh_failed", errorCode(t, rec))
}
