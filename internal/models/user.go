package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Address is stored as a small embedded document on users and doctors.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2" json:"line2"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // Hide from JSON responses
	Image    string             `bson:"image" json:"image"`
	Phone    string             `bson:"phone" json:"phone"`
	Address  Address            `bson:"address" json:"address"`
	DOB      string             `bson:"dob" json:"dob"`
	Gender   string             `bson:"gender" json:"gender"`
}

// Snapshot returns the immutable copy of the user that gets embedded into an
// appointment at booking time.
func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
		Phone: u.Phone,
		DOB:   u.DOB,
	}
}

// UserSnapshot is the denormalized copy of a user taken when an appointment
// is created. It never tracks later profile edits.
type UserSnapshot struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Image string             `bson:"image" json:"image"`
	Phone string             `bson:"phone" json:"phone"`
	DOB   string             `bson:"dob" json:"dob"`
}
