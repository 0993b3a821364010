// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests can run without a running database.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewDatabase connects to the MongoDB deployment specified by the
// TEST_MONGO_URI environment variable and returns a throwaway database with
// a unique name, dropped automatically when the test finishes.
//
// The test is skipped automatically if TEST_MONGO_URI is not set, so
// integration tests are opt-in and never break CI environments without Mongo.
func NewDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping integration test")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("testutil.NewDatabase: connect: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		t.Fatalf("testutil.NewDatabase: ping: %v", err)
	}

	// A fresh database per test gives free isolation without any cleanup
	// between assertions.
	name := "travelbuddy_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	db := client.Database(name)

	t.Cleanup(func() {
		ctx := context.Background()
		if err := db.Drop(ctx); err != nil {
			t.Logf("testutil.NewDatabase: drop %s: %v", name, err)
		}
		_ = client.Disconnect(ctx)
	})
	return db
}
