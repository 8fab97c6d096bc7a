package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/repository"
	"github.com/aajcs/apiLionGym/internal/service"
	"github.com/aajcs/apiLionGym/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// PresenceHandler upgrades authenticated clients to a websocket and
// keeps the online flag in sync with the connection lifetime. No
// message protocol: the socket is read until it closes.
type PresenceHandler struct {
	presence *service.PresenceService
	tokens   *auth.TokenIssuer
	users    repository.IUserRepository
	log      *slog.Logger
}

func NewPresenceHandler(presence *service.PresenceService, tokens *auth.TokenIssuer, users repository.IUserRepository, log *slog.Logger) *PresenceHandler {
	return &PresenceHandler{presence: presence, tokens: tokens, users: users, log: log}
}

// Connect handles GET /api/ws?x-token=...
// Browsers cannot set headers on websocket dials, so the token rides in
// the query string.
func (h *PresenceHandler) Connect(c *gin.Context) {
	tokenString := c.Query("x-token")
	if tokenString == "" {
		tokenString = c.GetHeader("x-token")
	}

	userIDHex, err := h.tokens.Verify(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
		return
	}
	userID, err := util.ParseObjectID(userIDHex)
	if err != nil {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := h.presence.Connected(c.Request.Context(), user.ID); err != nil {
		h.log.Error("failed to mark user online", "userId", user.ID.Hex(), "error", err)
		return
	}
	// The request context dies with the connection; the offline write
	// needs its own.
	defer h.presence.Disconnected(context.Background(), user.ID)

	h.log.Info("presence connected", "userId", user.ID.Hex())

	// Read pump. The client sends nothing we act on; this only detects
	// the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.log.Info("presence disconnected", "userId", user.ID.Hex())
}
