package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/travelbuddy/backend/internal/domain"
)

// UserTripsRepo maintains the denormalized planned_trips list embedded in
// each user record. The trips collection is the source of truth; this list
// is a secondary index the service layer keeps synchronized after every
// trip mutation.
type UserTripsRepo interface {
	// Push appends a planned-trip copy to the user's embedded list.
	// Returns domain.ErrNotFound if no user with that email exists.
	Push(ctx context.Context, ownerEmail string, trip domain.PlannedTrip) error

	// Set overwrites the embedded copy whose trip_id matches tripID.
	// Returns domain.ErrNotFound if the user or the entry is absent.
	Set(ctx context.Context, ownerEmail, tripID string, trip domain.PlannedTrip) error

	// Pull removes the embedded copy whose trip_id matches tripID.
	// Returns domain.ErrNotFound if no user with that email exists.
	Pull(ctx context.Context, ownerEmail, tripID string) error
}

// mongoUserTripsRepo is the Mongo implementation of UserTripsRepo.
type mongoUserTripsRepo struct {
	users *mongo.Collection
}

// NewUserTripsRepo constructs a UserTripsRepo backed by the provided database.
func NewUserTripsRepo(db *mongo.Database) UserTripsRepo {
	return &mongoUserTripsRepo{users: db.Collection(usersCollection)}
}

func (r *mongoUserTripsRepo) Push(ctx context.Context, ownerEmail string, trip domain.PlannedTrip) error {
	filter := bson.M{"email": ownerEmail}
	update := bson.M{"$push": bson.M{"planned_trips": trip}}

	res, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("repo.UserTripsRepo.Push: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repo.UserTripsRepo.Push: %w", domain.ErrNotFound)
	}
	return nil
}

// Set uses Mongo's positional $ operator: the filter matches the array
// element by trip_id and $set replaces exactly that element.
func (r *mongoUserTripsRepo) Set(ctx context.Context, ownerEmail, tripID string, trip domain.PlannedTrip) error {
	filter := bson.M{"email": ownerEmail, "planned_trips.trip_id": tripID}
	update := bson.M{"$set": bson.M{"planned_trips.$": trip}}

	res, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("repo.UserTripsRepo.Set: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repo.UserTripsRepo.Set: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *mongoUserTripsRepo) Pull(ctx context.Context, ownerEmail, tripID string) error {
	filter := bson.M{"email": ownerEmail}
	update := bson.M{"$pull": bson.M{"planned_trips": bson.M{"trip_id": tripID}}}

	res, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("repo.UserTripsRepo.Pull: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repo.UserTripsRepo.Pull: %w", domain.ErrNotFound)
	}
	return nil
}
