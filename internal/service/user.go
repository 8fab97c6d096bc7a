package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles the administrative user surface: list, get,
// create, update, soft delete.
type UserService struct {
	users  repository.IUserRepository
	tokens *auth.TokenIssuer
	log    *slog.Logger
}

func NewUserService(users repository.IUserRepository, tokens *auth.TokenIssuer, log *slog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: log}
}

// List returns all non-deleted users with the total count.
func (s *UserService) List(ctx context.Context) ([]*model.User, int64, error) {
	return s.users.FindAll(ctx)
}

// Get returns a non-deleted user, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create registers a user with a hashed password and issues a session
// token for it, mirroring the sign-up flow. Email uniqueness comes from
// the store index, never from a pre-check.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, string, error) {
	role := req.Role
	if role == "" {
		role = model.RoleReadOnly
	}
	if !model.IsValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	accessLevel := req.AccessLevel
	if accessLevel == "" {
		accessLevel = model.AccessNone
	}
	if !model.IsValidAccessLevel(accessLevel) {
		return nil, "", fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, accessLevel)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user, err := s.users.Create(ctx, &model.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Role:        role,
		AccessLevel: accessLevel,
		Active:      active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Update applies the mutable fields of req to a user. Identity fields
// (id, email) are dropped even when present in the payload, and a new
// password is hashed before it reaches the store.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req *model.UpdateUserRequest) (*model.User, error) {
	fields := bson.M{}

	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Picture != "" {
		fields["picture"] = req.Picture
	}
	if req.Role != "" {
		if !model.IsValidRole(req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
		}
		fields["role"] = req.Role
	}
	if req.AccessLevel != "" {
		if !model.IsValidAccessLevel(req.AccessLevel) {
			return nil, fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, req.AccessLevel)
		}
		fields["accessLevel"] = req.AccessLevel
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		fields["password"] = hash
	}

	user, err := s.users.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete soft-deletes a user. Deleting an already-deleted id resolves
// nothing and returns ErrUserNotFound; no state toggles back.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
