package service

import (
	"context"
	"log/slog"

	"github.com/aajcs/apiLionGym/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresenceService owns the online flag. It is the only writer; nothing
// else in the system mutates presence.
type PresenceService struct {
	users repository.IUserRepository
	log   *slog.Logger
}

func NewPresenceService(users repository.IUserRepository, log *slog.Logger) *PresenceService {
	return &PresenceService{users: users, log: log}
}

// Connected marks a user online.
func (s *PresenceService) Connected(ctx context.Context, userID primitive.ObjectID) error {
	return s.users.SetOnline(ctx, userID, true)
}

// Disconnected marks a user offline. Called from connection teardown,
// so a failure is logged rather than propagated.
func (s *PresenceService) Disconnected(ctx context.Context, userID primitive.ObjectID) {
	if err := s.users.SetOnline(ctx, userID, false); err != nil {
		s.log.Error("failed to mark user offline", "userId", userID.Hex(), "error", err)
	}
}
