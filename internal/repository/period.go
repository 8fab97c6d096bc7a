package repository

import (
	"context"
	"time"

	"github.com/aajcs/apiLionGym/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IPeriodRepository defines financial period persistence with the same
// soft-delete scoping as users.
type IPeriodRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Period, error)
	FindAll(ctx context.Context) ([]*model.Period, int64, error)
	Create(ctx context.Context, period *model.Period) (*model.Period, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Period, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*model.Period, error)
}

// PeriodRepository implements period persistence over a mongo collection
type PeriodRepository struct {
	collection *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) IPeriodRepository {
	return &PeriodRepository{collection: db.Collection("periods")}
}

func (r *PeriodRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Period, error) {
	var period *model.Period
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&period)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return period, nil
}

func (r *PeriodRepository) FindAll(ctx context.Context) ([]*model.Period, int64, error) {
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

	var periods []*model.Period
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, 0, err
	}
	return periods, total, nil
}

func (r *PeriodRepository) Create(ctx context.Context, period *model.Period) (*model.Period, error) {
	now := time.Now()
	period.CreatedAt = now
	period.UpdatedAt = now
	period.Deleted = false

	res, err := r.collection.InsertOne(ctx, period)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		period.ID = oid
	}
	return period, nil
}

func (r *PeriodRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Period, error) {
	fields["updatedAt"] = time.Now()

	var period *model.Period
	err := r.collection.FindOneAndUpdate(
		ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&period)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return period, nil
}

func (r *PeriodRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*model.Period, error) {
	return r.UpdateByID(ctx, id, bson.M{"deleted": true})
}
