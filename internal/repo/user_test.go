package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/travelbuddy/backend/internal/domain"
	"github.com/travelbuddy/backend/internal/repo"
	"github.com/travelbuddy/backend/testutil"
)

// seedUser inserts a bare user record the embedded-list operations act on.
func seedUser(t *testing.T, users *mongo.Collection, email string) {
	t.Helper()
	_, err := users.InsertOne(context.Background(), domain.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PlannedTrips: []domain.PlannedTrip{},
	})
	require.NoError(t, err)
}

func loadUser(t *testing.T, users *mongo.Collection, email string) domain.User {
	t.Helper()
	var u domain.User
	require.NoError(t, users.FindOne(context.Background(), bson.M{"email": email}).Decode(&u))
	return u
}

func TestUserTripsRepo_Push(t *testing.T) {
	db := testutil.NewDatabase(t)
	ctx := context.Background()
	users := db.Collection("Users")
	r := repo.NewUserTripsRepo(db)
	seedUser(t, users, "a@example.com")

	trip := storedTrip("a@example.com", "Rome").Planned()
	require.NoError(t, r.Push(ctx, "a@example.com", trip))

	u := loadUser(t, users, "a@example.com")
	require.Len(t, u.PlannedTrips, 1)
	assert.Equal(t, trip.TripID, u.PlannedTrips[0].TripID)
	assert.Equal(t, "Rome", u.PlannedTrips[0].Destination)
}

func TestUserTripsRepo_Push_UnknownUser(t *testing.T) {
	db := testutil.NewDatabase(t)
	r := repo.NewUserTripsRepo(db)

	err := r.Push(context.Background(), "nobody@example.com", storedTrip("nobody@example.com", "Rome").Planned())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserTripsRepo_Set_ReplacesMatchingEntryOnly(t *testing.T) {
	db := testutil.NewDatabase(t)
	ctx := context.Background()
	users := db.Collection("Users")
	r := repo.NewUserTripsRepo(db)
	seedUser(t, users, "a@example.com")

	rome := storedTrip("a@example.com", "Rome").Planned()
	tokyo := storedTrip("a@example.com", "Tokyo").Planned()
	require.NoError(t, r.Push(ctx, "a@example.com", rome))
	require.NoError(t, r.Push(ctx, "a@example.com", tokyo))

	rome.OverallCost = 5000
	require.NoError(t, r.Set(ctx, "a@example.com", rome.TripID, rome))

	u := loadUser(t, users, "a@example.com")
	require.Len(t, u.PlannedTrips, 2)
	assert.Equal(t, 5000.0, u.PlannedTrips[0].OverallCost)
	// The sibling entry is untouched.
	assert.Equal(t, 2000.0, u.PlannedTrips[1].OverallCost)
}

func TestUserTripsRepo_Set_UnknownTrip(t *testing.T) {
	db := testutil.NewDatabase(t)
	users := db.Collection("Users")
	r := repo.NewUserTripsRepo(db)
	seedUser(t, users, "a@example.com")

	err := r.Set(context.Background(), "a@example.com", "NOPE-000000-XXXXXX",
		storedTrip("a@example.com", "Rome").Planned())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserTripsRepo_Pull(t *testing.T) {
	db := testutil.NewDatabase(t)
	ctx := context.Background()
	users := db.Collection("Users")
	r := repo.NewUserTripsRepo(db)
	seedUser(t, users, "a@example.com")

	rome := storedTrip("a@example.com", "Rome").Planned()
	tokyo := storedTrip("a@example.com", "Tokyo").Planned()
	require.NoError(t, r.Push(ctx, "a@example.com", rome))
	require.NoError(t, r.Push(ctx, "a@example.com", tokyo))

	require.NoError(t, r.Pull(ctx, "a@example.com", rome.TripID))

	u := loadUser(t, users, "a@example.com")
	require.Len(t, u.PlannedTrips, 1)
	assert.Equal(t, tokyo.TripID, u.PlannedTrips[0].TripID)
}
