package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productDoc(oid primitive.ObjectID, name string, count int) bson.D {
	ts := primitive.NewDateTimeFromTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "name", Value: name},
		{Key: "description", Value: "a thing"},
		{Key: "price", Value: 9.99},
		{Key: "category", Value: "tools"},
		{Key: "stock", Value: 5},
		{Key: "totalOrdersCount", Value: count},
		{Key: "createdAt", Value: ts},
		{Key: "updatedAt", Value: ts},
	}
}

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func TestMongoProductStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns an id", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p, err := domain.NewProduct("Widget", "", 9.99, "tools", 0)
		require.NoError(mt, err)
		require.NoError(mt, s.Create(ctx, p))

		_, err = domain.ParseProductID(p.ID.String())
		assert.NoError(mt, err)
		assert.Equal(mt, 0, p.TotalOrdersCount)
	})

	mt.Run("create duplicate name", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: products index: products_name_unique",
		}))

		p, err := domain.NewProduct("Widget", "", 9.99, "tools", 0)
		require.NoError(mt, err)
		err = s.Create(ctx, p)
		assert.ErrorIs(mt, err, store.ErrProductNameExists)
		assert.ErrorIs(mt, err, store.ErrDuplicate)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, productDoc(oid, "Widget", 2)))

		p, err := s.GetByID(ctx, domain.ProductIDFromObjectID(oid))
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), p.ID.String())
		assert.Equal(mt, "Widget", p.Name)
		assert.Equal(mt, 2, p.TotalOrdersCount)
		assert.InDelta(mt, 9.99, p.Price, 0.0001)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := s.GetByID(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID()))
		assert.ErrorIs(mt, err, store.ErrProductNotFound)
	})

	mt.Run("invalid id never reaches the server", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		_, err := s.GetByID(ctx, domain.ProductID("not-an-id"))
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
	})

	mt.Run("list", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			productDoc(primitive.NewObjectID(), "Widget", 0),
			productDoc(primitive.NewObjectID(), "Gadget", 1),
		))

		products, err := s.List(ctx, "tools")
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "Gadget", products[1].Name)
	})

	mt.Run("list empty returns empty slice", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		products, err := s.List(ctx, "")
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("update returns post-update document", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(oid, "Widget Pro", 0)}))

		name := "Widget Pro"
		p, err := s.Update(ctx, domain.ProductIDFromObjectID(oid), domain.ProductPatch{Name: &name})
		require.NoError(mt, err)
		assert.Equal(mt, "Widget Pro", p.Name)
	})

	mt.Run("update not found", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		stock := 3
		_, err := s.Update(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID()), domain.ProductPatch{Stock: &stock})
		assert.ErrorIs(mt, err, store.ErrProductNotFound)
	})

	mt.Run("update duplicate name", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error",
		}))

		name := "Gadget"
		_, err := s.Update(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID()), domain.ProductPatch{Name: &name})
		assert.ErrorIs(mt, err, store.ErrProductNameExists)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, s.Delete(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID())))
	})

	mt.Run("delete not found", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		assert.ErrorIs(mt, s.Delete(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID())), store.ErrProductNotFound)
	})

	mt.Run("adjust order count", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		assert.NoError(mt, s.AdjustOrderCount(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID()), 1))
	})

	mt.Run("adjust order count on missing product", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := s.AdjustOrderCount(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID()), -1)
		assert.ErrorIs(mt, err, store.ErrProductNotFound)
	})

	mt.Run("adjust order count server failure", func(mt *mtest.T) {
		s := NewMongoProductStore(mt.Coll, nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "shutting down",
		}))
		err := s.AdjustOrderCount(ctx, domain.ProductIDFromObjectID(primitive.NewObjectID()), 1)
		require.Error(mt, err)
		assert.False(mt, store.IsNotFoundError(err))
		var se *store.StoreError
		assert.ErrorAs(mt, err, &se)
	})
}
