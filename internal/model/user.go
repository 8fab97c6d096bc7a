package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Recorded on the document, enforced elsewhere.
const (
	RoleSuperAdmin = "superAdmin"
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
	RoleUser       = "user"
	RoleReadOnly   = "readOnly"
)

// Access levels, orthogonal to role.
const (
	AccessLimited = "limited"
	AccessFull    = "full"
	AccessNone    = "none"
)

// IsValidRole reports whether role is one of the known role values.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleOperator, RoleUser, RoleReadOnly:
		return true
	}
	return false
}

// IsValidAccessLevel reports whether level is one of the known access levels.
func IsValidAccessLevel(level string) bool {
	switch level {
	case AccessLimited, AccessFull, AccessNone:
		return true
	}
	return false
}

// User is an account document. Password holds the bcrypt hash and must
// never reach a response body; Deleted marks a soft delete and every
// repository read is scoped to Deleted == false.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Picture     string             `bson:"picture,omitempty" json:"picture,omitempty"`
	Role        string             `bson:"role" json:"role"`
	AccessLevel string             `bson:"accessLevel" json:"accessLevel"`
	Active      bool               `bson:"active" json:"active"`
	Deleted     bool               `bson:"deleted" json:"-"`
	Online      bool               `bson:"online" json:"online"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserResponse is the outward representation of a user (no credential,
// no soft-delete marker, no store metadata).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Picture     string    `json:"picture,omitempty"`
	Role        string    `json:"role"`
	AccessLevel string    `json:"accessLevel"`
	Active      bool      `json:"active"`
	Online      bool      `json:"online"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToResponse converts a User to its outward representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Picture:     u.Picture,
		Role:        u.Role,
		AccessLevel: u.AccessLevel,
		Active:      u.Active,
		Online:      u.Online,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// LoginRequest is the password login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries the Google-issued ID token
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// AuthResponse is the {user, token} pair returned by every auth operation
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateUserRequest is the administrative user creation body
type CreateUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	AccessLevel string `json:"accessLevel"`
	Active      *bool  `json:"active"`
}

// UpdateUserRequest is the user update body. ID and Email are accepted in
// the payload but never written; a non-empty Password is rehashed.
type UpdateUserRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Picture     string `json:"picture"`
	Role        string `json:"role"`
	AccessLevel string `json:"accessLevel"`
	Active      *bool  `json:"active"`
}
