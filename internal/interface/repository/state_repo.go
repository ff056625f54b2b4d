// internal/interface/repository/state_repo.go
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
)

// MongoStateRepository implements the StateRepository interface. One
// document per owner; every save replaces the whole document, so readers
// never observe a partial write.
type MongoStateRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoStateRepository creates a new MongoDB state repository
func NewMongoStateRepository(db *mongo.Database, logger logger.Logger) repository.StateRepository {
	collection := db.Collection("user_states")

	// Create unique index on ownerId
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"ownerId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoStateRepository{
		collection: collection,
		logger:     logger,
	}
}

// Load returns the last saved state for the owner. A missing or
// unreadable document yields a fresh default state, never an error.
func (r *MongoStateRepository) Load(ctx context.Context, ownerID string) (*entity.UserState, error) {
	var state entity.UserState
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&state)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Warn("Stored state unreadable, starting fresh", "ownerId", ownerID, "error", err)
		}
		return entity.NewUserState(ownerID), nil
	}
	if state.Profile == nil {
		state.Profile = entity.DefaultProfile(ownerID)
	}
	return &state, nil
}

// Save replaces the owner's document with the given state
func (r *MongoStateRepository) Save(ctx context.Context, state *entity.UserState) error {
	state.SavedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"ownerId": state.OwnerID}, state, opts)
	return err
}
