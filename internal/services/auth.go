package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/ctxutil"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/platform/validate"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	txr           datadb.TxRunner
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	clock         Clock
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	clock Clock,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		txr:           datadb.NewTxRunner(db),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		clock:         clock,
	}
}

var errInvalidCredentials = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))

type registration struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func normalizeUserFields(user *types.User) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Password = strings.TrimSpace(user.Password)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (err error) {
	defer func() { observability.Current().IncAuthEvent("register", err == nil) }()

	if user == nil {
		return apierr.BadRequest("invalid_request", errors.New("no user given"))
	}
	normalizeUserFields(user)
	if vErr := validate.Struct(&registration{
		Email:     user.Email,
		Password:  user.Password,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}); vErr != nil {
		return vErr
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if hErr != nil {
		return fmt.Errorf("failed to hash password: %w", hErr)
	}
	user.Password = string(hashed)

	errEmailTaken := apierr.Conflict("email_taken", errors.New("email is already in use"))
	return as.txr.InTx(ctx, func(dbc dbctx.Context) error {
		exists, err := as.userRepo.EmailExists(dbc, user.Email)
		if err != nil {
			return fmt.Errorf("failed to check user email: %w", err)
		}
		if exists {
			return errEmailTaken
		}
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
			if datadb.IsUniqueViolation(err) {
				return errEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		as.log.Info("User registered", "user_id", user.ID)
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (access string, refresh string, err error) {
	defer func() { observability.Current().IncAuthEvent("login", err == nil) }()

	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", "", apierr.BadRequest("invalid_request", errors.New("email and password are required"))
	}

	users, uErr := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if uErr != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", uErr)
	}
	if len(users) == 0 || users[0] == nil {
		return "", "", errInvalidCredentials
	}
	user := users[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", "", errInvalidCredentials
	}

	err = as.txr.InTx(ctx, func(dbc dbctx.Context) error {
		if n, err := as.userTokenRepo.DeleteExpired(dbc, as.clock.now().UTC()); err != nil {
			return fmt.Errorf("failed to purge expired tokens: %w", err)
		} else if n > 0 {
			as.log.Debug("Purged expired user tokens", "count", n)
		}
		tok, err := as.issueTokens(dbc, user)
		if err != nil {
			return err
		}
		access, refresh = tok.AccessToken, tok.RefreshToken
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (access string, refresh string, err error) {
	defer func() { observability.Current().IncAuthEvent("refresh", err == nil) }()

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", apierr.BadRequest("invalid_request", errors.New("refresh_token is required"))
	}
	errInvalidRefresh := apierr.New(http.StatusUnauthorized, "refresh_failed", errors.New("invalid or expired refresh token"))

	err = as.txr.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return fmt.Errorf("error fetching refresh token: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return errInvalidRefresh
		}
		existing := found[0]
		if existing.ExpiresAt.Before(as.clock.now()) {
			if err := as.userTokenRepo.DeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("refresh token expired, error deleting: %w", err)
			}
			return errInvalidRefresh
		}
		users, err := as.userRepo.GetByIDs(dbc, []uuid.UUID{existing.UserID})
		if err != nil {
			return fmt.Errorf("failed to load user for refresh: %w", err)
		}
		if len(users) == 0 || users[0] == nil {
			return errInvalidRefresh
		}
		tok, err := as.issueTokens(dbc, users[0])
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.DeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("failed to remove old refresh token: %w", err)
		}
		access, refresh = tok.AccessToken, tok.RefreshToken
		return nil
	})
	if err != nil {
		as.log.Warn("Refresh failed", "error", err)
		return "", "", err
	}
	return access, refresh, nil
}

func (as *authService) LogoutUser(ctx context.Context) (err error) {
	defer func() { observability.Current().IncAuthEvent("logout", err == nil) }()

	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return errAuthRequired
	}
	return as.txr.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := as.userTokenRepo.GetByAccessTokens(dbc, []string{rd.TokenString})
		if err != nil {
			return fmt.Errorf("error finding user token: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return errAuthRequired
		}
		if err := as.userTokenRepo.DeleteByIDs(dbc, []uuid.UUID{found[0].ID}); err != nil {
			return fmt.Errorf("error deleting user token: %w", err)
		}
		return nil
	})
}

// SetContextFromToken verifies the access token and that its session still
// exists, then attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, errAuthRequired
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.clock.now))
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("failed to parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("invalid user id in token: %w", err))
	}

	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("failed to fetch user token: %w", err)
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("session has been revoked"))
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		SessionID:   found[0].ID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(dbc dbctx.Context, user *types.User) (*types.UserToken, error) {
	access, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token error: %w", err)
	}
	tok := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: uuid.New().String(),
		ExpiresAt:    as.clock.now().UTC().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{tok}); err != nil {
		as.log.Warn("Create user token error", "error", err)
		return nil, fmt.Errorf("create user token error: %w", err)
	}
	return tok, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.clock.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
