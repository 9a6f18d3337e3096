package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docslot/docslot-api/internal/booking"
)

type Doctor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Image      string             `bson:"image" json:"image"`
	Speciality string             `bson:"speciality" json:"speciality"`
	Degree     string             `bson:"degree" json:"degree"`
	Experience string             `bson:"experience" json:"experience"`
	About      string             `bson:"about" json:"about"`
	Fees       int64              `bson:"fees" json:"fees"`
	Address    Address            `bson:"address" json:"address"`
	Available  bool               `bson:"available" json:"available"`
	// SlotsBooked maps a date string ("15/03/2025") to the times already
	// reserved on that date.
	SlotsBooked booking.SlotMap `bson:"slots_booked" json:"slots_booked"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
}

// Snapshot returns the immutable copy of the doctor embedded into an
// appointment at booking time. The slot map is deliberately left out.
func (d Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		ID:         d.ID,
		Name:       d.Name,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Fees:       d.Fees,
		Address:    d.Address,
	}
}

type DoctorSnapshot struct {
	ID         primitive.ObjectID `bson:"id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image" json:"image"`
	Speciality string             `bson:"speciality" json:"speciality"`
	Degree     string             `bson:"degree" json:"degree"`
	Fees       int64              `bson:"fees" json:"fees"`
	Address    Address            `bson:"address" json:"address"`
}
