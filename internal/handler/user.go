package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/service"
	"github.com/aajcs/apiLionGym/pkg/util"

	"github.com/gin-gonic/gin"
)

const maxNameLength = 100

// UserHandler handles the administrative user endpoints
type UserHandler struct {
	userService *service.UserService
	log         *slog.Logger
}

func NewUserHandler(userService *service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// List returns all non-deleted users (GET /api/users)
func (h *UserHandler) List(c *gin.Context) {
	users, total, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.log.Error("user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "users": responses})
}

// Get returns one user (GET /api/users/:id)
func (h *UserHandler) Get(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid user id", ""))
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse("user not found", ""))
			return
		}
		h.log.Error("user get failed", "id", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// Create registers a user (POST /api/users)
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid email format", ""))
		return
	}
	req.Email = email

	if len(req.Name) > maxNameLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("name exceeds maximum length", ""))
		return
	}

	user, token, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		default:
			h.log.Error("user create failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{User: user.ToResponse(), Token: token})
}

// Update mutates a user (PUT /api/users/:id). Identity fields in the
// payload are ignored.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid user id", ""))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, model.NewErrorResponse("user not found", ""))
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		default:
			h.log.Error("user update failed", "id", id.Hex(), "error", err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// Delete soft-deletes a user (DELETE /api/users/:id)
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid user id", ""))
		return
	}

	user, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse("user not found", ""))
			return
		}
		h.log.Error("user delete failed", "id", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}
