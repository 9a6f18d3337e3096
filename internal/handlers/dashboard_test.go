package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docslot/docslot-api/internal/models"
)

func TestEarningsCountsCompletedAndPaid(t *testing.T) {
	appointments := []models.Appointment{
		{Amount: 100, Status: models.StatusCompleted},
		{Amount: 200, Status: models.StatusActive, Paid: true},
		{Amount: 400, Status: models.StatusActive},
		{Amount: 800, Status: models.StatusCancelled},
		// paid before cancellation: the payment still counts
		{Amount: 1600, Status: models.StatusCancelled, Paid: true},
	}

	if got := earnings(appointments); got != 100+200+1600 {
		t.Fatalf("earnings = %d", got)
	}
}

func TestDistinctPatients(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	appointments := []models.Appointment{
		{UserID: a}, {UserID: a}, {UserID: b},
	}

	if got := distinctPatients(appointments); got != 2 {
		t.Fatalf("distinctPatients = %d", got)
	}
}

func TestLatestCapsAtListLength(t *testing.T) {
	appointments := []models.Appointment{{Amount: 1}, {Amount: 2}}

	if got := latest(appointments, 5); len(got) != 2 {
		t.Fatalf("latest returned %d items", len(got))
	}
	if got := latest(appointments, 1); len(got) != 1 || got[0].Amount != 1 {
		t.Fatalf("latest(1) = %v", latest(appointments, 1))
	}
}
