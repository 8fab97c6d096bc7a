package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/config"
	"github.com/aajcs/apiLionGym/internal/handler"
	"github.com/aajcs/apiLionGym/internal/middleware"
	"github.com/aajcs/apiLionGym/internal/repository"
	"github.com/aajcs/apiLionGym/internal/service"
	"github.com/aajcs/apiLionGym/internal/version"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups the persistence layer
type Repositories struct {
	Users   repository.IUserRepository
	Periods repository.IPeriodRepository
}

// Services groups the business layer
type Services struct {
	Tokens   *auth.TokenIssuer
	Auth     *service.AuthService
	Users    *service.UserService
	Periods  *service.PeriodService
	Presence *service.PresenceService
}

// Handlers groups the HTTP layer
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Periods  *handler.PeriodHandler
	Presence *handler.PresenceHandler
}

func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:   repository.NewUserRepository(db),
		Periods: repository.NewPeriodRepository(db),
	}
}

func InitServices(ctx context.Context, cfg *config.Config, repos *Repositories, log *slog.Logger) (*Services, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	var google auth.IdentityVerifier
	if cfg.Google.ClientID != "" {
		verifier, err := auth.NewGoogleVerifier(ctx, cfg.Google.ClientID)
		if err != nil {
			return nil, err
		}
		google = verifier
	} else {
		log.Warn("GOOGLE_CLIENT_ID not set, google sign-in disabled")
		google = disabledVerifier{}
	}

	return &Services{
		Tokens:   tokens,
		Auth:     service.NewAuthService(repos.Users, tokens, google, log),
		Users:    service.NewUserService(repos.Users, tokens, log),
		Periods:  service.NewPeriodService(repos.Periods),
		Presence: service.NewPresenceService(repos.Users, log),
	}, nil
}

func InitHandlers(services *Services, repos *Repositories, log *slog.Logger) *Handlers {
	return &Handlers{
		Auth:     handler.NewAuthHandler(services.Auth, log),
		Users:    handler.NewUserHandler(services.Users, log),
		Periods:  handler.NewPeriodHandler(services.Periods, log),
		Presence: handler.NewPresenceHandler(services.Presence, services.Tokens, repos.Users, log),
	}
}

// disabledVerifier rejects every federated token when no client id is
// configured.
type disabledVerifier struct{}

func (disabledVerifier) Verify(context.Context, string) (*auth.GoogleProfile, error) {
	return nil, auth.ErrInvalidGoogleToken
}

func setupRouter(h *Handlers, s *Services, repos *Repositories) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	api := r.Group("/api")

	// Auth routes (no middleware except renew)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/google", h.Auth.GoogleSignIn)
		authRoutes.GET("/renew", middleware.AuthMiddleware(s.Tokens, repos.Users), h.Auth.Renew)
	}

	// Presence websocket authenticates via token in the query string
	api.GET("/ws", h.Presence.Connect)

	// Everything else requires a valid session
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.Tokens, repos.Users))

	users := protected.Group("/users")
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	periods := protected.Group("/periods")
	{
		periods.GET("", h.Periods.List)
		periods.POST("", h.Periods.Create)
		periods.GET("/:id", h.Periods.Get)
		periods.PUT("/:id", h.Periods.Update)
		periods.DELETE("/:id", h.Periods.Delete)
	}

	return r
}
