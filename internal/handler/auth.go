package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/middleware"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/service"

	"github.com/gin-gonic/gin"
)

const maxEmailLength = 254

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// loginFailedMessage is deliberately identical for unknown email,
// inactive account and wrong password, so responses cannot be used to
// enumerate accounts. The real cause goes to the log only.
const loginFailedMessage = "email or password is not correct"

// AuthHandler handles login, Google sign-in and session renewal
type AuthHandler struct {
	authService *service.AuthService
	log         *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Login handles password login (POST /api/auth/login)
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid email format", ""))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail),
			errors.Is(err, service.ErrInactiveAccount),
			errors.Is(err, service.ErrBadCredential):
			h.log.Info("login rejected", "email", email, "reason", err.Error())
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(loginFailedMessage, ""))
		default:
			h.log.Error("login failed", "email", email, "error", err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{User: user.ToResponse(), Token: token})
}

// GoogleSignIn handles federated login (POST /api/auth/google)
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req model.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	user, token, err := h.authService.GoogleSignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidGoogleToken):
			h.log.Info("google sign-in rejected", "reason", err.Error())
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("google token is not valid", ""))
		case errors.Is(err, service.ErrBlockedAccount):
			h.log.Info("google sign-in blocked", "reason", err.Error())
			c.JSON(http.StatusUnauthorized, model.NewErrorResponse("account is blocked, contact an administrator", ""))
		default:
			h.log.Error("google sign-in failed", "error", err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{User: user.ToResponse(), Token: token})
}

// Renew reissues a token for the already-authenticated caller
// (GET /api/auth/renew)
func (h *AuthHandler) Renew(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("missing token", ""))
		return
	}

	user, token, err := h.authService.Renew(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmail) {
			c.JSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
			return
		}
		h.log.Error("renew failed", "userId", current.ID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{User: user.ToResponse(), Token: token})
}

// normalizeEmail lowercases, trims and validates an email address.
func normalizeEmail(email string) (string, bool) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return "", false
	}
	return email, true
}
