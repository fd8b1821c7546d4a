package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// ListingRepository implements domain.ListingRepository on MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewListingRepository ensures the search indexes. Index failures are
// logged only, the indexes may already exist.
func NewListingRepository(db *mongo.Database, collectionName string, log *logger.Logger) *ListingRepository {
	collection := db.Collection(collectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "gender", Value: 1}}},
		{Keys: bson.D{{Key: "minPrice", Value: 1}}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for listings collection", zap.String("collection", collectionName), zap.Error(err))
	}

	return &ListingRepository{
		collection: collection,
		logger:     log.Named("ListingRepository"),
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	listing.ID = ""
	doc, err := fromDomainListing(listing)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	clean, err := cleanDocument(doc)
	if err != nil {
		r.logger.Error("Failed to encode listing", zap.String("name", listing.Name), zap.Error(err))
		return err
	}
	if _, err := r.collection.InsertOne(ctx, clean); err != nil {
		r.logger.Error("Failed to insert listing", zap.String("name", listing.Name), zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	listing.ID = doc.ID.Hex()
	r.logger.Info("Listing created in DB", zap.String("listing_id", listing.ID))
	return nil
}

// Update sets every non-null field of listing. Fields that are null in the
// encoded record keep their stored value.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	doc, err := fromDomainListing(listing)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("%w: missing id", domain.ErrListingNotFound)
	}
	clean, err := cleanDocument(doc)
	if err != nil {
		r.logger.Error("Failed to encode listing", zap.String("listing_id", listing.ID), zap.Error(err))
		return err
	}
	delete(clean, "_id")

	update := bson.M{"$set": clean}
	if doc.MinPrice == nil {
		// derived field: no available tier means no price to filter on
		update["$unset"] = bson.M{"minPrice": ""}
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update listing in DB", zap.String("listing_id", listing.ID), zap.Error(err))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrListingNotFound)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete listing from DB", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectID(id, domain.ErrListingNotFound)
	if err != nil {
		return nil, err
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("Failed to get listing by ID from DB", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByFilter returns one page of listings, newest first, and the total
// number of matches.
func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	query := buildListingQuery(filter)

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
		if filter.Page > 1 {
			findOptions.SetSkip((filter.Page - 1) * filter.Limit)
		}
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to find listings", zap.Any("query", query), zap.Error(err))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}
	listings := make([]*domain.Listing, len(docs))
	for i, doc := range docs {
		listings[i] = doc.toDomain()
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}
	return listings, total, nil
}

func buildListingQuery(filter domain.Filter) bson.M {
	query := bson.M{}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"location": pattern},
			bson.M{"address": pattern},
			bson.M{"pincode": pattern},
		}
	}
	if filter.Gender != "" {
		query["gender"] = filter.Gender
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["minPrice"] = price
	}
	return query
}
