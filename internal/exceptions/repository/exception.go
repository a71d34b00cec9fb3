package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinagenda/pkg/config"
	"clinagenda/pkg/model"
)

const CollectionName = "Exceptions"

// ExceptionRepository persists per-date overrides. Listings are sorted
// by creation time ascending so the resolver's last-write-wins
// reduction is deterministic when duplicates exist for one date.
type ExceptionRepository interface {
	Create(ctx context.Context, exc *model.Exception) error
	FindByProfessional(ctx context.Context, professionalID string) ([]*model.Exception, error)
	FindByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]*model.Exception, error)
}

type mongoExceptionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoExceptionRepository(cfg *config.Config) ExceptionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoExceptionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoExceptionRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoExceptionRepository) Create(ctx context.Context, exc *model.Exception) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	exc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, exc)
	if err != nil {
		return fmt.Errorf("failed to create exception: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		exc.ID = oid.Hex()
	}
	return nil
}

func (r *mongoExceptionRepository) FindByProfessional(ctx context.Context, professionalID string) ([]*model.Exception, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"professional_id": professionalID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions: %w", err)
	}
	defer cursor.Close(ctx)

	var exceptions []*model.Exception
	if err = cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *mongoExceptionRepository) FindByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]*model.Exception, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"date":            date,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions by date: %w", err)
	}
	defer cursor.Close(ctx)

	var exceptions []*model.Exception
	if err = cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions: %w", err)
	}
	return exceptions, nil
}
