package domain

// User is the account record held in the Users collection. Account fields
// (credentials, profile) are owned by the auth layer; the trip core only
// maintains the PlannedTrips secondary index. The struct is declared here so
// integration tests can seed realistic user documents.
type User struct {
	Email        string        `bson:"email" json:"email"`
	FirstName    string        `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName     string        `bson:"last_name,omitempty" json:"last_name,omitempty"`
	PlannedTrips []PlannedTrip `bson:"planned_trips" json:"planned_trips"`
}
