package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService orchestrates password login, Google sign-in and session
// renewal. It owns no state beyond its collaborators.
type AuthService struct {
	users  repository.IUserRepository
	tokens *auth.TokenIssuer
	google auth.IdentityVerifier
	log    *slog.Logger
}

func NewAuthService(users repository.IUserRepository, tokens *auth.TokenIssuer, google auth.IdentityVerifier, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, google: google, log: log}
}

// Login authenticates an email/password pair and issues a session token.
// Checks run strictly in order: existence, active state, credential.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("login lookup failed: %w", err)
	}
	if user == nil {
		return nil, "", ErrUnknownEmail
	}

	if !user.Active {
		return nil, "", ErrInactiveAccount
	}

	if !auth.CheckPassword(password, user.Password) {
		return nil, "", ErrBadCredential
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GoogleSignIn verifies a Google ID token, finds or creates the matching
// user, and issues a session token. A concurrent first sign-in for the
// same email can race the insert; the store's unique index rejects the
// loser, which then retries the lookup once.
func (s *AuthService) GoogleSignIn(ctx context.Context, rawIDToken string) (*model.User, string, error) {
	profile, err := s.google.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, "", fmt.Errorf("google sign-in lookup failed: %w", err)
	}

	if user == nil {
		user, err = s.createFromProfile(ctx, profile)
		if err != nil {
			return nil, "", err
		}
	}

	if !user.Active {
		return nil, "", ErrBlockedAccount
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *AuthService) createFromProfile(ctx context.Context, profile *auth.GoogleProfile) (*model.User, error) {
	// Never a usable password: a random value hashed like any other
	// credential, discarded immediately after.
	credential, err := auth.RandomCredential()
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder credential: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{
		Name:        profile.Name,
		Email:       profile.Email,
		Password:    credential,
		Picture:     profile.Picture,
		Role:        model.RoleReadOnly,
		AccessLevel: model.AccessNone,
		Active:      true,
	})
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, fmt.Errorf("google sign-in create failed: %w", err)
	}

	// Lost the create race: the other request's insert won, so the
	// lookup must now succeed.
	s.log.Info("google sign-in create raced, retrying lookup", "email", profile.Email)
	user, err = s.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("google sign-in retry lookup failed: %w", err)
	}
	if user == nil {
		return nil, ErrStoreUnavailable
	}
	return user, nil
}

// Renew reissues a token for a caller already authenticated by the
// bearer middleware. No credential re-check; the only failure is a user
// that no longer resolves, e.g. deleted since the token was issued.
func (s *AuthService) Renew(ctx context.Context, userID primitive.ObjectID) (*model.User, string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("renew lookup failed: %w", err)
	}
	if user == nil {
		return nil, "", ErrUnknownEmail
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}
