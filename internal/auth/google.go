package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// ErrInvalidGoogleToken covers every Google ID token failure exposed to
// callers: network error, bad signature, audience mismatch, expiry.
var ErrInvalidGoogleToken = errors.New("google token is not valid")

const googleIssuer = "https://accounts.google.com"

// GoogleProfile holds the verified claims used for sign-in.
type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier validates a third-party ID token and extracts the
// verified profile claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleProfile, error)
}

// GoogleVerifier verifies Google-issued ID tokens against Google's
// published keys and this service's OAuth client id.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier discovers the Google OIDC provider and prepares a
// verifier bound to the given client id.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover google oidc provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify checks signature, issuer, audience and expiry, then extracts
// the profile claims.
func (g *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleProfile, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email claim", ErrInvalidGoogleToken)
	}

	return &GoogleProfile{Email: claims.Email, Name: claims.Name, Picture: claims.Picture}, nil
}
