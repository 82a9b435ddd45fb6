package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Integration tests need a reachable MongoDB. Point EDUNAIJA_TEST_MONGO_URI
// at one, or run a local instance; tests skip when nothing answers.
const defaultTestMongoURI = "mongodb://localhost:27017"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error

	dbCounter   int
	dbCounterMu sync.Mutex
)

func testClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		uri := os.Getenv("EDUNAIJA_TEST_MONGO_URI")
		if uri == "" {
			uri = defaultTestMongoURI
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, clientErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if clientErr != nil {
			return
		}
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// SetupTestDB returns a fresh database for one test and drops it on
// cleanup. It skips the test when no MongoDB is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := testClient()
	if err != nil {
		t.Skipf("mongodb not available: %v", err)
	}

	dbCounterMu.Lock()
	dbCounter++
	name := fmt.Sprintf("edunaija_test_%d_%d", time.Now().UnixNano(), dbCounter)
	dbCounterMu.Unlock()

	db := c.Database(name)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test db %s: %v", name, err)
		}
	})
	return db
}

// TestContext returns a context with a generous timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
