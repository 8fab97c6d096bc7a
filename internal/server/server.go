package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aajcs/apiLionGym/internal/config"
	"github.com/aajcs/apiLionGym/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	mongo  *mongo.Client
	log    *slog.Logger
}

// New builds the whole service: mongo connection, indexes,
// repositories, services, handlers, router. Construction has no side
// effects beyond the store connection; serving starts in Run.
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		cancel()
		return nil, err
	}
	cancel()

	repos := InitRepositories(db)

	// The OIDC verifier holds on to this context for later key fetches,
	// so it gets the long-lived one.
	services, err := InitServices(context.Background(), cfg, repos, log)
	if err != nil {
		return nil, err
	}

	handlers := InitHandlers(services, repos, log)

	router := setupRouter(handlers, services, repos)

	return &Server{
		cfg:    cfg,
		router: router,
		mongo:  mongoClient,
		log:    log,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Run starts the server
func (s *Server) Run() error {
	s.log.Info("server listening", "address", s.cfg.Server.Address())
	return s.router.Run(s.cfg.Server.Address())
}

// Close disconnects the MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}
