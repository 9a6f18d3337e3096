package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus replaces the trio of independent booleans the platform
// used to carry. An appointment is active until it is either cancelled or
// completed; both are terminal.
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	DocID    primitive.ObjectID `bson:"docId" json:"docId"`
	UserData UserSnapshot       `bson:"userData" json:"userData"`
	DocData  DoctorSnapshot     `bson:"docData" json:"docData"`
	SlotDate string             `bson:"slotDate" json:"slotDate"`
	SlotTime string             `bson:"slotTime" json:"slotTime"`
	Amount   int64              `bson:"amount" json:"amount"`
	Status   AppointmentStatus  `bson:"status" json:"status"`
	// Paid is orthogonal to Status: a cancelled appointment can stay paid,
	// but payment can only be recorded while the appointment is not cancelled.
	Paid     bool      `bson:"paid" json:"paid"`
	BookedAt time.Time `bson:"bookedAt" json:"bookedAt"`
}
