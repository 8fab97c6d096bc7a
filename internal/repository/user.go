package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aajcs/apiLionGym/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEmail is returned when an insert collides with the unique
// email index over non-deleted users.
var ErrDuplicateEmail = errors.New("email is already registered")

// IUserRepository defines user persistence. Every read and update is
// scoped to non-deleted documents; there is no escape hatch.
type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, int64, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error
}

// UserRepository implements user persistence over a mongo collection
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) IUserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// notDeleted is the single place where the soft-delete predicate is
// attached, so no read path can forget it.
func notDeleted(filter bson.M) bson.M {
	filter["deleted"] = false
	return filter
}

// EnsureUserIndexes creates the partial unique index that makes "one
// non-deleted user per email" a store-level guarantee. The application
// never relies on check-then-insert for uniqueness.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"deleted": false}),
	})
	if err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, notDeleted(bson.M{"email": email}))
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, notDeleted(bson.M{"_id": id}))
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user *model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*model.User, int64, error) {
	filter := notDeleted(bson.M{})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Deleted = false

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// UpdateByID applies the given fields to a non-deleted user and returns
// the updated document, or nil if no such user exists. Callers must not
// pass _id or email; the service layer strips them.
func (r *UserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	fields["updatedAt"] = time.Now()

	var user *model.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SoftDelete marks a user deleted. Because the filter is scoped to
// non-deleted documents, a second call finds nothing and returns nil.
func (r *UserRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.UpdateByID(ctx, id, bson.M{"deleted": true})
}

// SetOnline flips the presence flag without touching anything else.
func (r *UserRepository) SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error {
	_, err := r.collection.UpdateOne(
		ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"online": online, "updatedAt": time.Now()}},
	)
	return err
}
