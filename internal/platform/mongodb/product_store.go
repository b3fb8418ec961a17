package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a domain.Product.
type productDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description"`
	Price            float64            `bson:"price"`
	Category         string             `bson:"category"`
	Stock            int                `bson:"stock"`
	TotalOrdersCount int                `bson:"totalOrdersCount"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toDocument(p *domain.Product) productDocument {
	return productDocument{
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Category:         p.Category,
		Stock:            p.Stock,
		TotalOrdersCount: p.TotalOrdersCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (d productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:               domain.ProductIDFromObjectID(d.ID),
		Name:             d.Name,
		Description:      d.Description,
		Price:            d.Price,
		Category:         d.Category,
		Stock:            d.Stock,
		TotalOrdersCount: d.TotalOrdersCount,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

// MongoProductStore implements store.ProductStore on a products collection.
type MongoProductStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

// NewMongoProductStore creates a product store backed by coll.
// If logger is nil, a default logger will be used.
func NewMongoProductStore(coll *mongo.Collection, logger *slog.Logger) *MongoProductStore {
	if coll == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("collection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoProductStore{
		coll:   coll,
		logger: logger.With(slog.String("component", "product_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ store.ProductStore = (*MongoProductStore)(nil)

// Create implements store.ProductStore.Create. The unique index on name
// makes the duplicate check and the insert a single atomic operation.
func (s *MongoProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc := toDocument(product)
	doc.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		mapped := MapError(err, store.ErrProductNotFound, store.ErrProductNameExists)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate product name", slog.String("name", product.Name))
		} else {
			log.Error("failed to create product", slog.String("error", err.Error()))
		}
		return mapped
	}

	product.ID = domain.ProductIDFromObjectID(doc.ID)
	log.Debug("product created", slog.String("product_id", product.ID.String()))
	return nil
}

// List implements store.ProductStore.List. An empty category matches all.
func (s *MongoProductStore) List(ctx context.Context, category string) ([]*domain.Product, error) {
	filter := bson.D{}
	if category != "" {
		filter = bson.D{{Key: "category", Value: category}}
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, MapError(err, nil, nil)
	}
	defer func() { _ = cursor.Close(ctx) }()

	products := make([]*domain.Product, 0)
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, MapError(err, nil, nil)
	}
	return products, nil
}

// GetByID implements store.ProductStore.GetByID
func (s *MongoProductStore) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}

	var doc productDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, MapError(err, store.ErrProductNotFound, nil)
	}
	return doc.toDomain(), nil
}

// Update implements store.ProductStore.Update. Only non-nil patch fields are
// written; updatedAt is always refreshed and the post-update document returned.
func (s *MongoProductStore) Update(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}

	set := bson.D{{Key: "updatedAt", Value: s.now()}}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}
	if patch.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *patch.Category})
	}
	if patch.Stock != nil {
		set = append(set, bson.E{Key: "stock", Value: *patch.Stock})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(&doc)
	if err != nil {
		return nil, MapError(err, store.ErrProductNotFound, store.ErrProductNameExists)
	}
	return doc.toDomain(), nil
}

// Delete implements store.ProductStore.Delete
func (s *MongoProductStore) Delete(ctx context.Context, id domain.ProductID) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return MapError(err, nil, nil)
	}
	if res.DeletedCount == 0 {
		return store.ErrProductNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("product deleted",
		slog.String("product_id", id.String()))
	return nil
}

// AdjustOrderCount implements store.ProductStore.AdjustOrderCount with a
// server-side $inc, so concurrent adjustments never lose updates.
func (s *MongoProductStore) AdjustOrderCount(ctx context.Context, id domain.ProductID, delta int) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "totalOrdersCount", Value: delta}}}},
	)
	if err != nil {
		return store.NewStoreError("product", "adjust_count", "counter update failed", MapError(err, nil, nil))
	}
	if res.MatchedCount == 0 {
		return store.ErrProductNotFound
	}
	return nil
}
