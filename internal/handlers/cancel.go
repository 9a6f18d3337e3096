package handlers

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/docslot/docslot-api/internal/booking"
	"github.com/docslot/docslot-api/internal/models"
)

// errNotActive means the appointment was already cancelled or completed.
var errNotActive = errors.New("appointment is not active")

// cancelAndRelease flips an active appointment to cancelled, then hands the
// slot back to the doctor. The status guard on the first write stops double
// cancels; the $pull release is idempotent, so a crash between the two writes
// at worst leaves a slot briefly reserved, never a cancelled slot re-bookable
// twice.
func (h *Handler) cancelAndRelease(ctx context.Context, apt *models.Appointment) error {
	res, err := h.appointments().UpdateOne(ctx,
		bson.M{"_id": apt.ID, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusCancelled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNotActive
	}

	_, err = h.doctors().UpdateOne(ctx, bson.M{"_id": apt.DocID},
		booking.ReleaseUpdate(apt.SlotDate, apt.SlotTime))
	return err
}
