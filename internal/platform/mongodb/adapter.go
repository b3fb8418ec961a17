package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/redact"
	"github.com/phrazzld/shop-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ProductsCollection is the collection holding catalog documents.
const ProductsCollection = "products"

// ErrClosed is returned by Database after Close.
var ErrClosed = fmt.Errorf("%w: document store closed", store.ErrNotInitialized)

// Adapter owns the document store client.
type Adapter struct {
	cfg    config.MongoConfig
	logger *slog.Logger

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
	closed bool
}

// NewAdapter creates an uninitialized document store adapter.
func NewAdapter(cfg config.MongoConfig, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "mongo_adapter")),
	}
}

// Initialize connects, pings the primary and ensures the unique index on
// products.name exists. It is idempotent.
func (a *Adapter) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.client != nil {
		return nil
	}

	timeout := time.Duration(a.cfg.ConnectTimeoutSeconds) * time.Second
	opts := options.Client().
		ApplyURI(a.cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %s", redact.Error(err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping document store: %s", redact.Error(err))
	}

	db := client.Database(a.cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	a.client = client
	a.db = db
	a.logger.Info("document store initialized", slog.String("database", a.cfg.Database))
	return nil
}

// EnsureIndexes creates the indexes the product store relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ProductsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("products_name_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create products name index: %w", err)
	}
	return nil
}

// Database returns the active database handle, or ErrNotInitialized/ErrClosed.
func (a *Adapter) Database() (*mongo.Database, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return nil, ErrClosed
	}
	if a.db == nil {
		return nil, store.ErrNotInitialized
	}
	return a.db, nil
}

// Ping checks connectivity for health reporting.
func (a *Adapter) Ping(ctx context.Context) error {
	a.mu.RLock()
	client, closed := a.client, a.closed
	a.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if client == nil {
		return store.ErrNotInitialized
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client. It is safe to call more than once.
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if a.client == nil {
		return nil
	}
	err := a.client.Disconnect(ctx)
	a.client = nil
	a.db = nil
	a.logger.Info("document store closed")
	return err
}
