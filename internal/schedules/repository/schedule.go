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
	mongotx "clinagenda/pkg/db/mongo"
	"clinagenda/pkg/model"
)

const CollectionName = "ScheduleTemplates"

// TemplateRepository persists recurring weekly schedule rules. Rows are
// immutable in this core; the surrounding admin flow replaces them by
// delete-and-recreate.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *model.ScheduleTemplate) error
	FindByProfessional(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error)
	FindByProfessionalAndWeekday(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoTemplateRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoTemplateRepository(cfg *config.Config) TemplateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTemplateRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout adds a deadline unless the context is a transaction
// session, which must not be wrapped.
func (r *mongoTemplateRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTemplateRepository) Create(ctx context.Context, tpl *model.ScheduleTemplate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	tpl.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, tpl)
	if err != nil {
		return fmt.Errorf("failed to create schedule template: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tpl.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTemplateRepository) FindByProfessional(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"professional_id": professionalID}
	opts := options.Find().SetSort(bson.D{
		{Key: "weekday", Value: 1},
		{Key: "created_at", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []*model.ScheduleTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode schedule templates: %w", err)
	}
	return templates, nil
}

func (r *mongoTemplateRepository) FindByProfessionalAndWeekday(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"weekday":         weekday,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule templates by weekday: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []*model.ScheduleTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode schedule templates: %w", err)
	}
	return templates, nil
}

func (r *mongoTemplateRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
