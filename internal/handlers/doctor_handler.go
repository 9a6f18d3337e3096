package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/middleware"
	"github.com/docslot/docslot-api/internal/models"
	"github.com/docslot/docslot-api/internal/utils"
)

// LoginDoctor authenticates a doctor and returns a signed token.
func (h *Handler) LoginDoctor(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	var doc models.Doctor
	err := h.doctors().FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&doc)
	if err != nil || !auth.CheckPasswordHash(req.Password, doc.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid Credentials!")
		return
	}

	token, err := h.Tokens.Generate(doc.ID.Hex(), auth.RoleDoctor)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Login failed! Try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token})
}

// DoctorList is the public catalogue the patient site renders. Passwords and
// emails are stripped by projection.
func (h *Handler) DoctorList(c *gin.Context) {
	ctx := c.Request.Context()
	opts := options.Find().SetProjection(bson.M{"password": 0, "email": 0})
	cursor, err := h.doctors().Find(ctx, bson.M{}, opts)
	if err != nil {
		h.Log.Errorw("doctor list failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load doctors")
		return
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load doctors")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"doctors": doctors})
}

// DoctorAppointments returns the authenticated doctor's appointments.
func (h *Handler) DoctorAppointments(c *gin.Context) {
	docID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxDocID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor ID in token")
		return
	}

	appointments, err := h.findAppointments(c, bson.M{"docId": docID})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}

// CompleteAppointment marks one of the doctor's own active appointments as
// completed.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	aptID, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	ctx := c.Request.Context()

	var apt models.Appointment
	if err := h.appointments().FindOne(ctx, bson.M{"_id": aptID}).Decode(&apt); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Appointment Not Found!")
		return
	}
	if apt.DocID.Hex() != c.GetString(middleware.CtxDocID) {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized Action!")
		return
	}

	res, err := h.appointments().UpdateOne(ctx,
		bson.M{"_id": aptID, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusCompleted}})
	if err != nil {
		h.Log.Errorw("complete failed", "appointment", aptID.Hex(), "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Mark failed! Try again.")
		return
	}
	if res.MatchedCount == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Appointment Already Closed!")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Appointment Completed.")
}

// DoctorCancelAppointment cancels one of the doctor's own appointments and
// releases the slot.
func (h *Handler) DoctorCancelAppointment(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	aptID, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	ctx := c.Request.Context()

	var apt models.Appointment
	if err := h.appointments().FindOne(ctx, bson.M{"_id": aptID}).Decode(&apt); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Appointment Not Found!")
		return
	}
	if apt.DocID.Hex() != c.GetString(middleware.CtxDocID) {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized Action!")
		return
	}

	if err := h.cancelAndRelease(ctx, &apt); err != nil {
		if errors.Is(err, errNotActive) {
			utils.JSONError(c, http.StatusBadRequest, "Appointment Already Closed!")
			return
		}
		h.Log.Errorw("cancel failed", "appointment", aptID.Hex(), "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Cancellation failed! Try again.")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Appointment Cancelled.")
}

// DoctorDashboard aggregates the doctor-panel dashboard numbers.
func (h *Handler) DoctorDashboard(c *gin.Context) {
	docID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxDocID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor ID in token")
		return
	}

	appointments, err := h.findAppointments(c, bson.M{"docId": docID})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"dashData": gin.H{
		"earnings":           earnings(appointments),
		"appointments":       len(appointments),
		"patients":           distinctPatients(appointments),
		"latestAppointments": latest(appointments, 5),
	}})
}

// DoctorProfile returns the authenticated doctor's own document.
func (h *Handler) DoctorProfile(c *gin.Context) {
	docID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxDocID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor ID in token")
		return
	}

	var doc models.Doctor
	if err := h.doctors().FindOne(c.Request.Context(), bson.M{"_id": docID}).Decode(&doc); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Doctor Not Found!")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"profileData": doc})
}

// UpdateDoctorProfile lets a doctor edit fee, address, experience, about and
// availability from the panel.
func (h *Handler) UpdateDoctorProfile(c *gin.Context) {
	docID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxDocID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor ID in token")
		return
	}

	var req struct {
		Fees       *int64          `json:"fees"`
		Address    *models.Address `json:"address"`
		Experience *string         `json:"experience"`
		About      *string         `json:"about"`
		Available  *bool           `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	update := bson.M{}
	if req.Fees != nil {
		update["fees"] = *req.Fees
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Experience != nil {
		update["experience"] = *req.Experience
	}
	if req.About != nil {
		update["about"] = *req.About
	}
	if req.Available != nil {
		update["available"] = *req.Available
	}
	if len(update) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	_, err = h.doctors().UpdateOne(c.Request.Context(), bson.M{"_id": docID}, bson.M{"$set": update})
	if err != nil {
		h.Log.Errorw("doctor profile update failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Profile update failed")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Profile Updated.")
}

// findAppointments loads appointments matching the filter, newest first.
func (h *Handler) findAppointments(c *gin.Context, filter bson.M) ([]models.Appointment, error) {
	ctx := c.Request.Context()
	opts := options.Find().SetSort(bson.D{{Key: "bookedAt", Value: -1}})
	cursor, err := h.appointments().Find(ctx, filter, opts)
	if err != nil {
		h.Log.Errorw("appointments query failed", "err", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
