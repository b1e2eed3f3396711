package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/moodtracker-backend/internal/domain"
	"github.com/yungbote/moodtracker-backend/internal/http/response"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairDTO is returned by login and refresh.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// bindBody decodes the JSON body into dst and answers 400 on failure.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", err))
		return false
	}
	return true
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindBody(c, &req) {
		return
	}
	user := &types.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := ah.authService.RegisterUser(c.Request.Context(), user); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, "", gin.H{"ok": true, "id": user.ID})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if !bindBody(c, &req) {
		return
	}
	ah.issue(c)(ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password))
}

// Refresh is public: the refresh token in the body is the credential.
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindBody(c, &req) {
		return
	}
	ah.issue(c)(ah.authService.RefreshUser(c.Request.Context(), req.RefreshToken))
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) issue(c *gin.Context) func(access, refresh string, err error) {
	return func(access, refresh string, err error) {
		if err != nil {
			response.RespondAPIError(c, err)
			return
		}
		response.RespondOK(c, TokenPairDTO{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			ExpiresIn:    int(ah.authService.GetAccessTTL().Seconds()),
		})
	}
}
