// Package repo contains all database access logic for the TravelBuddy API.
// Each collection has its own file with an interface and a Mongo
// implementation. No business logic lives here — only queries and mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelbuddy/backend/internal/domain"
)

const (
	tripsCollection = "Trips"
	usersCollection = "Users"
)

// TripRepo defines the persistence operations for trips.
// The service layer depends on this interface, not the concrete Mongo
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Insert stores a new trip. Returns domain.ErrConflict if the owner
	// already has a trip for the same destination (unique index).
	Insert(ctx context.Context, trip domain.Trip) error

	// GetByID retrieves the trip matching both tripID and ownerEmail.
	// Returns domain.ErrNotFound when no trip matches both.
	GetByID(ctx context.Context, tripID, ownerEmail string) (domain.Trip, error)

	// GetByDestination retrieves the owner's trip for a destination.
	// Returns domain.ErrNotFound when the owner has none.
	GetByDestination(ctx context.Context, destination, ownerEmail string) (domain.Trip, error)

	// ListByOwner returns all trips owned by ownerEmail.
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Trip, error)

	// Update overwrites the mutable fields of the trip matching
	// (trip.TripID, trip.OwnerEmail). Returns domain.ErrNotFound if absent.
	Update(ctx context.Context, trip domain.Trip) error

	// Delete removes the trip matching both keys.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, ownerEmail string) error
}

// mongoTripRepo is the Mongo implementation of TripRepo.
type mongoTripRepo struct {
	trips *mongo.Collection
}

// NewTripRepo constructs a TripRepo backed by the provided database.
func NewTripRepo(db *mongo.Database) TripRepo {
	return &mongoTripRepo{trips: db.Collection(tripsCollection)}
}

// EnsureIndexes creates the unique (destination, owner_email) index that
// backstops the duplicate-planning check: two concurrent plans for the same
// new destination can both pass the read check, but the index rejects the
// second insert. Call once at startup, before serving traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(tripsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "destination", Value: 1},
			{Key: "owner_email", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("repo.EnsureIndexes: %w", err)
	}
	return nil
}

func (r *mongoTripRepo) Insert(ctx context.Context, trip domain.Trip) error {
	if _, err := r.trips.InsertOne(ctx, trip); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("repo.TripRepo.Insert: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.TripRepo.Insert: %w", err)
	}
	return nil
}

func (r *mongoTripRepo) GetByID(ctx context.Context, tripID, ownerEmail string) (domain.Trip, error) {
	filter := bson.M{"trip_id": tripID, "owner_email": ownerEmail}
	trip, err := r.findOne(ctx, filter)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *mongoTripRepo) GetByDestination(ctx context.Context, destination, ownerEmail string) (domain.Trip, error) {
	filter := bson.M{"destination": destination, "owner_email": ownerEmail}
	trip, err := r.findOne(ctx, filter)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByDestination: %w", err)
	}
	return trip, nil
}

func (r *mongoTripRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Trip, error) {
	cursor, err := r.trips.Find(ctx, bson.M{"owner_email": ownerEmail})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []domain.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: decode: %w", err)
	}
	return trips, nil
}

// Update overwrites the mutable fields only; trip_id, owner_email, and
// destination are immutable after creation.
func (r *mongoTripRepo) Update(ctx context.Context, trip domain.Trip) error {
	filter := bson.M{"trip_id": trip.TripID, "owner_email": trip.OwnerEmail}
	update := bson.M{"$set": bson.M{
		"duration":            trip.Duration,
		"number_of_travelers": trip.NumberOfTravelers,
		"overall_cost":        trip.OverallCost,
		"cost_per_traveler":   trip.CostPerTraveler,
		"planned_date_time":   trip.PlannedDateTime,
		"generated_itinerary": trip.GeneratedItinerary,
	}}

	res, err := r.trips.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *mongoTripRepo) Delete(ctx context.Context, tripID, ownerEmail string) error {
	filter := bson.M{"trip_id": tripID, "owner_email": ownerEmail}

	res, err := r.trips.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// findOne runs a single-document lookup and maps the driver's no-documents
// error to domain.ErrNotFound.
func (r *mongoTripRepo) findOne(ctx context.Context, filter bson.M) (domain.Trip, error) {
	var trip domain.Trip
	err := r.trips.FindOne(ctx, filter).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return trip, nil
}
