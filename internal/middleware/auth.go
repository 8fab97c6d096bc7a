package middleware

import (
	"net/http"
	"strings"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/repository"
	"github.com/aajcs/apiLionGym/pkg/util"

	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the authenticated user.
const UserKey = "authUser"

// AuthMiddleware verifies the bearer token and resolves the live user.
// The lookup runs through the soft-delete-scoped repository, so a token
// minted for a since-deleted user stops working here.
func AuthMiddleware(tokens *auth.TokenIssuer, users repository.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("missing token", ""))
			return
		}

		userIDHex, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
			return
		}

		userID, err := util.ParseObjectID(userIDHex)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("invalid or expired token", ""))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

// extractToken accepts both an Authorization bearer header and the
// legacy x-token header the clients still send.
func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return after
		}
	}
	return c.GetHeader("x-token")
}
