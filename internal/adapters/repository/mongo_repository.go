package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/ports"
)

// funFactsDocument is the stored shape: {stateCode, funFacts, __v}
type funFactsDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StateCode string             `bson:"stateCode"`
	FunFacts  []string           `bson:"funFacts"`
	Version   int64              `bson:"__v"`
}

func (d *funFactsDocument) toEntity() *entities.FunFacts {
	facts := d.FunFacts
	if facts == nil {
		facts = []string{}
	}
	return &entities.FunFacts{
		ID:        d.ID.Hex(),
		StateCode: d.StateCode,
		FunFacts:  facts,
		Version:   d.Version,
	}
}

// MongoFunFactRepository implements FunFactRepository on a mongo collection
type MongoFunFactRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

// NewMongoFunFactRepository creates a new mongo-backed repository
func NewMongoFunFactRepository(coll *mongo.Collection, log *logger.Logger) *MongoFunFactRepository {
	return &MongoFunFactRepository{
		coll:   coll,
		logger: log.WithComponent("mongo_repository"),
	}
}

var _ ports.FunFactRepository = (*MongoFunFactRepository)(nil)

// EnsureIndexes creates the unique stateCode index
func (r *MongoFunFactRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "stateCode", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("stateCode_1"),
	})
	if err != nil {
		return fmt.Errorf("create stateCode index: %w", err)
	}
	return nil
}

func (r *MongoFunFactRepository) GetByStateCode(ctx context.Context, stateCode string) (*entities.FunFacts, error) {
	start := time.Now()

	var doc funFactsDocument
	err := r.coll.FindOne(ctx, bson.M{"stateCode": stateCode}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		r.logger.LogStorageCall("find_one", stateCode, since(start), nil)
		return nil, entities.ErrRecordNotFound
	}
	r.logger.LogStorageCall("find_one", stateCode, since(start), err)
	if err != nil {
		return nil, fmt.Errorf("get fun facts by state code: %w", err)
	}

	return doc.toEntity(), nil
}

func (r *MongoFunFactRepository) List(ctx context.Context) ([]*entities.FunFacts, error) {
	start := time.Now()

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		r.logger.LogStorageCall("find", "", since(start), err)
		return nil, fmt.Errorf("list fun facts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []funFactsDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.LogStorageCall("find", "", since(start), err)
		return nil, fmt.Errorf("decode fun facts: %w", err)
	}
	r.logger.LogStorageCall("find", "", since(start), nil)

	records := make([]*entities.FunFacts, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toEntity())
	}

	return records, nil
}

func (r *MongoFunFactRepository) Create(ctx context.Context, record *entities.FunFacts) error {
	start := time.Now()

	doc := funFactsDocument{
		ID:        primitive.NewObjectID(),
		StateCode: record.StateCode,
		FunFacts:  nonNil(record.FunFacts),
		Version:   0,
	}

	_, err := r.coll.InsertOne(ctx, doc)
	r.logger.LogStorageCall("insert_one", record.StateCode, since(start), err)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entities.ErrVersionConflict
		}
		return fmt.Errorf("create fun facts: %w", err)
	}

	record.ID = doc.ID.Hex()
	record.Version = 0
	return nil
}

func (r *MongoFunFactRepository) Update(ctx context.Context, record *entities.FunFacts) error {
	start := time.Now()

	filter := bson.M{"stateCode": record.StateCode, "__v": record.Version}
	update := bson.M{
		"$set": bson.M{"funFacts": nonNil(record.FunFacts)},
		"$inc": bson.M{"__v": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	r.logger.LogStorageCall("update_one", record.StateCode, since(start), err)
	if err != nil {
		return fmt.Errorf("update fun facts: %w", err)
	}
	if res.MatchedCount == 0 {
		return entities.ErrVersionConflict
	}

	record.Version++
	return nil
}

func (r *MongoFunFactRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func nonNil(facts []string) []string {
	if facts == nil {
		return []string{}
	}
	return facts
}

func since(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1000000
}
