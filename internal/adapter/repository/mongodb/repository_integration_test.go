//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

var testDB *mongo.Database

// TestMain starts a throwaway MongoDB container.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	uri := fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		var errRetry error
		client, errRetry = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		if errRetry != nil {
			return errRetry
		}
		return client.Ping(context.Background(), nil)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	testDB = client.Database("shelterly_test")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func TestListingRepository_CRUDAndSearch(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.Collection("pgs_crud").Drop(ctx))
	repo := NewListingRepository(testDB, "pgs_crud", logger.NewNop())

	cheap := domain.NewListing()
	cheap.Name = "Budget Stay"
	cheap.Location = "BTM Layout"
	cheap.Gender = domain.GenderMale
	cheap.Sharing.Three = domain.SharingTier{Available: true, Price: 5500}
	require.NoError(t, repo.Create(ctx, cheap))
	require.NotEmpty(t, cheap.ID)

	premium := domain.NewListing()
	premium.Name = "Premium Nest"
	premium.Location = "Koramangala"
	premium.Gender = domain.GenderFemale
	premium.Sharing.One = domain.SharingTier{Available: true, Price: 15000}
	premium.Coordinates = &domain.Coordinates{Lat: 12.93, Lng: 77.62}
	require.NoError(t, repo.Create(ctx, premium))

	got, err := repo.FindByID(ctx, premium.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premium Nest", got.Name)
	assert.Equal(t, premium.Coordinates, got.Coordinates)

	got.Coordinates = nil
	got.Status = domain.StatusActive
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.FindByID(ctx, premium.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, again.Status)
	assert.NotNil(t, again.Coordinates, "null fields never overwrite stored values")

	var raw bson.M
	require.NoError(t, testDB.Collection("pgs_crud").FindOne(ctx, bson.M{"name": "Budget Stay"}).Decode(&raw))
	for k, v := range raw {
		assert.NotNil(t, v, "field %s stored as null", k)
	}

	results, total, err := repo.FindByFilter(ctx, domain.Filter{MaxPrice: 8000, Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, cheap.ID, results[0].ID)

	results, _, err = repo.FindByFilter(ctx, domain.Filter{Query: "korama", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, premium.ID, results[0].ID)

	require.NoError(t, repo.Delete(ctx, cheap.ID))
	_, err = repo.FindByID(ctx, cheap.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, cheap.ID), domain.ErrListingNotFound)
}

func TestCallbackRepository(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.Collection(callbackCollectionName).Drop(ctx))
	repo := NewCallbackRepository(testDB, logger.NewNop())

	req := &domain.CallbackRequest{PGID: "pg1", Name: "Ravi", Phone: "9876543210", Type: domain.CallbackTypeCallback, Status: domain.CallbackPending}
	require.NoError(t, repo.Create(ctx, req))
	require.NotEmpty(t, req.ID)

	require.NoError(t, repo.UpdateStatus(ctx, req.ID, domain.CallbackContacted))
	got, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CallbackContacted, got.Status)

	pending, err := repo.List(ctx, domain.CallbackPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "bad-id", domain.CallbackCompleted), domain.ErrCallbackNotFound)
}
