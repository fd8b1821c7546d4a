package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

// listingDocument is a Listing as stored in the pgs collection. minPrice is
// denormalized from the available sharing tiers for price filtering.
type listingDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	domain.Listing `bson:",inline"`
	MinPrice       *float64 `bson:"minPrice,omitempty"`
}

type callbackDocument struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	domain.CallbackRequest `bson:",inline"`
}

func fromDomainListing(l *domain.Listing) (*listingDocument, error) {
	doc := &listingDocument{Listing: *l}
	if l.ID != "" {
		oid, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed id %q", domain.ErrListingNotFound, l.ID)
		}
		doc.ID = oid
	}
	if price, ok := l.Sharing.MinPrice(); ok {
		doc.MinPrice = &price
	}
	return doc, nil
}

func (d *listingDocument) toDomain() *domain.Listing {
	l := d.Listing
	l.ID = d.ID.Hex()
	return &l
}

func (d *callbackDocument) toDomain() *domain.CallbackRequest {
	c := d.CallbackRequest
	c.ID = d.ID.Hex()
	return &c
}

// cleanDocument encodes v and strips every null so a write never stores or
// overwrites a field with null.
func cleanDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	dec.DefaultDocumentM()

	var generic bson.M
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return domain.StripUndefined(generic).(bson.M), nil
}

func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}
