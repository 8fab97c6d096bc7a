package service

import (
	"context"
	"time"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepo is an in-memory IUserRepository mirroring the mongo
// implementation's semantics: reads scoped to non-deleted documents and
// email uniqueness enforced on insert like the partial unique index.
type memUserRepo struct {
	users map[primitive.ObjectID]*model.User

	// failCreateOnce makes the next Create return ErrDuplicateEmail
	// without inserting, to simulate losing the insert race.
	failCreateOnce bool
	// hideEmailOnce makes the next FindByEmail for that address return
	// nothing, as if the concurrent winner had not committed yet.
	hideEmailOnce string
	createCalls   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func clone(u *model.User) *model.User {
	c := *u
	return &c
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.hideEmailOnce == email {
		r.hideEmailOnce = ""
		return nil, nil
	}
	for _, u := range r.users {
		if u.Email == email && !u.Deleted {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if u, ok := r.users[id]; ok && !u.Deleted {
		return clone(u), nil
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*model.User, int64, error) {
	var out []*model.User
	for _, u := range r.users {
		if !u.Deleted {
			out = append(out, clone(u))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.createCalls++
	if r.failCreateOnce {
		r.failCreateOnce = false
		return nil, repository.ErrDuplicateEmail
	}
	for _, u := range r.users {
		if u.Email == user.Email && !u.Deleted {
			return nil, repository.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Deleted = false
	r.users[user.ID] = clone(user)
	return clone(user), nil
}

func (r *memUserRepo) UpdateByID(_ context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || u.Deleted {
		return nil, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "picture":
			u.Picture = v.(string)
		case "password":
			u.Password = v.(string)
		case "role":
			u.Role = v.(string)
		case "accessLevel":
			u.AccessLevel = v.(string)
		case "active":
			u.Active = v.(bool)
		case "online":
			u.Online = v.(bool)
		case "deleted":
			u.Deleted = v.(bool)
		}
	}
	u.UpdatedAt = time.Now()
	return clone(u), nil
}

func (r *memUserRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.UpdateByID(ctx, id, bson.M{"deleted": true})
}

func (r *memUserRepo) SetOnline(_ context.Context, id primitive.ObjectID, online bool) error {
	if u, ok := r.users[id]; ok && !u.Deleted {
		u.Online = online
	}
	return nil
}

// fakeVerifier returns a fixed profile or error for any token.
type fakeVerifier struct {
	profile *auth.GoogleProfile
	err     error
}

func (f *fakeVerifier) Verify(context.Context, string) (*auth.GoogleProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}
