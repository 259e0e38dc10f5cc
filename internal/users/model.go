package users

import "time"

// User is an account identified by email. Login is email-only; the JWT is
// the only credential the API checks afterwards.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
