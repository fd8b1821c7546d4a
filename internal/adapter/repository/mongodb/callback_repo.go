package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

const callbackCollectionName = "callbackRequests"

type CallbackRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewCallbackRepository(db *mongo.Database, log *logger.Logger) *CallbackRepository {
	collection := db.Collection(callbackCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		log.Error("Failed to create indexes for callback requests", zap.Error(err))
	}

	return &CallbackRepository{
		collection: collection,
		logger:     log.Named("CallbackRepository"),
	}
}

func (r *CallbackRepository) Create(ctx context.Context, req *domain.CallbackRequest) error {
	doc := callbackDocument{ID: primitive.NewObjectID(), CallbackRequest: *req}
	clean, err := cleanDocument(doc)
	if err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(ctx, clean); err != nil {
		r.logger.Error("Failed to insert callback request", zap.String("pg_id", req.PGID), zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	req.ID = doc.ID.Hex()
	return nil
}

func (r *CallbackRepository) FindByID(ctx context.Context, id string) (*domain.CallbackRequest, error) {
	oid, err := objectID(id, domain.ErrCallbackNotFound)
	if err != nil {
		return nil, err
	}
	var doc callbackDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCallbackNotFound
		}
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CallbackRepository) List(ctx context.Context, status domain.CallbackStatus) ([]*domain.CallbackRequest, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to list callback requests", zap.String("status", string(status)), zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*callbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	out := make([]*domain.CallbackRequest, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out, nil
}

func (r *CallbackRepository) UpdateStatus(ctx context.Context, id string, status domain.CallbackStatus) error {
	oid, err := objectID(id, domain.ErrCallbackNotFound)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrCallbackNotFound
	}
	return nil
}
