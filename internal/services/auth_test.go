package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	"github.com/yungbote/moodtracker-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/pkg/ctxutil"
	"github.com/yungbote/moodtracker-backend/internal/platform/validate"
)

const testSecret = "test-secret"

type authEnv struct {
	auth  AuthService
	users UserService
	clock *time.Time
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	now := testNow
	env := &authEnv{clock: &now}
	clock := func() time.Time { return *env.clock }
	env.auth = NewAuthService(tx, log, userRepo, repos.NewUserTokenRepo(tx, log), testSecret, 15*time.Minute, 24*time.Hour, clock)
	env.users = NewUserService(tx, log, userRepo)
	return env
}

func (e *authEnv) register(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, e.auth.RegisterUser(context.Background(), &types.User{
		Email:     email,
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}))
}

func TestAuthRegister(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.register(t, "Register@Example.com")

	err := env.auth.RegisterUser(ctx, &types.User{
		Email: "register@example.com", Password: "another pass", FirstName: "A", LastName: "B",
	})
	requireAPIError(t, err, http.StatusConflict, "email_taken")

	err = env.auth.RegisterUser(ctx, &types.User{
		Email: "short@example.com", Password: "short", FirstName: "A", LastName: "B",
	})
	requireAPIError(t, err, http.StatusBadRequest, validate.Code)

	err = env.auth.RegisterUser(ctx, &types.User{
		Email: "not-an-email", Password: "long enough", FirstName: "A", LastName: "B",
	})
	requireAPIError(t, err, http.StatusBadRequest, validate.Code)
}

func TestAuthLoginSessionAndLogout(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.register(t, "login@example.com")

	_, _, err := env.auth.LoginUser(ctx, "login@example.com", "wrong password")
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	_, _, err = env.auth.LoginUser(ctx, "nobody@example.com", "correct horse")
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")

	access, refresh, err := env.auth.LoginUser(ctx, " LOGIN@example.com ", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	authed, err := env.auth.SetContextFromToken(ctx, access)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(authed)
	require.NotNil(t, rd)
	assert.Equal(t, access, rd.TokenString)

	me, err := env.users.GetMe(dbctxOf(authed))
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", me.Email)
	assert.Equal(t, rd.UserID, me.ID)

	renamed, err := env.users.UpdateName(authed, "Grace", "Hopper")
	require.NoError(t, err)
	assert.Equal(t, "Grace", renamed.FirstName)

	_, err = env.auth.SetContextFromToken(ctx, access+"x")
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	require.NoError(t, env.auth.LogoutUser(authed))
	_, err = env.auth.SetContextFromToken(ctx, access)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	requireAPIError(t, env.auth.LogoutUser(ctx), http.StatusUnauthorized, "unauthorized")
}

func TestAuthAccessTokenExpires(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.register(t, "expiry@example.com")

	access, _, err := env.auth.LoginUser(ctx, "expiry@example.com", "correct horse")
	require.NoError(t, err)

	*env.clock = env.clock.Add(env.auth.GetAccessTTL() + time.Minute)
	_, err = env.auth.SetContextFromToken(ctx, access)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestAuthRefresh(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.register(t, "refresh@example.com")

	_, refresh, err := env.auth.LoginUser(ctx, "refresh@example.com", "correct horse")
	require.NoError(t, err)

	access2, refresh2, err := env.auth.RefreshUser(ctx, refresh)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, refresh2)
	_, err = env.auth.SetContextFromToken(ctx, access2)
	require.NoError(t, err)

	_, _, err = env.auth.RefreshUser(ctx, refresh)
	requireAPIError(t, err, http.StatusUnauthorized, "refresh_failed")

	_, _, err = env.auth.RefreshUser(ctx, "")
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	*env.clock = env.clock.Add(48 * time.Hour)
	_, _, err = env.auth.RefreshUser(ctx, refresh2)
	requireAPIError(t, err, http.StatusUnauthorized, "refresh_failed")
}
