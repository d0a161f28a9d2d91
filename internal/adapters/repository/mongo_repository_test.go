package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by state code", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "statefacts.states", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "stateCode", Value: "GA"},
			{Key: "funFacts", Value: bson.A{"A", "B"}},
			{Key: "__v", Value: int32(2)},
		}))

		record, err := repo.GetByStateCode(context.Background(), "GA")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), record.ID)
		assert.Equal(mt, []string{"A", "B"}, record.FunFacts)
		assert.Equal(mt, int64(2), record.Version)
	})

	mt.Run("get missing record", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "statefacts.states", mtest.FirstBatch))

		_, err := repo.GetByStateCode(context.Background(), "GA")
		assert.ErrorIs(mt, err, entities.ErrRecordNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "statefacts.states", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "stateCode", Value: "AK"}, {Key: "funFacts", Value: bson.A{"cold"}}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "stateCode", Value: "TX"}},
		))

		records, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, []string{"cold"}, records[0].FunFacts)
		assert.Equal(mt, []string{}, records[1].FunFacts)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := entities.NewFunFacts("GA", []string{"A"})
		require.NoError(mt, repo.Create(context.Background(), record))
		assert.Len(mt, record.ID, 24)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), entities.NewFunFacts("GA", nil))
		assert.ErrorIs(mt, err, entities.ErrVersionConflict)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		record := &entities.FunFacts{StateCode: "GA", FunFacts: []string{"A"}, Version: 5}
		require.NoError(mt, repo.Update(context.Background(), record))
		assert.Equal(mt, int64(6), record.Version)
	})

	mt.Run("update stale version", func(mt *mtest.T) {
		repo := NewMongoFunFactRepository(mt.Coll, logger.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		record := &entities.FunFacts{StateCode: "GA", FunFacts: []string{"A"}, Version: 5}
		assert.ErrorIs(mt, repo.Update(context.Background(), record), entities.ErrVersionConflict)
	})
}
