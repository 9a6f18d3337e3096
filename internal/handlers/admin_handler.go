package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/booking"
	"github.com/docslot/docslot-api/internal/models"
	"github.com/docslot/docslot-api/internal/utils"
)

// LoginAdmin authenticates against the configured admin credentials and
// issues a token with an admin role claim.
func (h *Handler) LoginAdmin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.Cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Cfg.AdminPassword)) == 1
	if !emailOK || !passOK {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid Credentials!")
		return
	}

	token, err := h.Tokens.Generate(h.Cfg.AdminEmail, auth.RoleAdmin)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Login failed! Try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token})
}

type addDoctorRequest struct {
	Name       string `form:"name" binding:"required"`
	Email      string `form:"email" binding:"required,email"`
	Password   string `form:"password" binding:"required,min=8"`
	Speciality string `form:"speciality" binding:"required"`
	Degree     string `form:"degree" binding:"required"`
	Experience string `form:"experience" binding:"required"`
	About      string `form:"about" binding:"required"`
	Fees       int64  `form:"fees" binding:"required"`
	Address    string `form:"address" binding:"required"`
}

// AddDoctor registers a new doctor from the admin console. The request is
// multipart: the profile image is uploaded to the image store and only its
// URL is persisted.
func (h *Handler) AddDoctor(c *gin.Context) {
	var req addDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	var addr models.Address
	if err := json.Unmarshal([]byte(req.Address), &addr); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid address format")
		return
	}

	imageURL, err := h.uploadImage(c, "image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			utils.JSONError(c, http.StatusBadRequest, "Doctor image is required")
			return
		}
		h.Log.Errorw("doctor image upload failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Image upload failed")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to add doctor")
		return
	}

	doc := models.Doctor{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		Image:       imageURL,
		Speciality:  req.Speciality,
		Degree:      req.Degree,
		Experience:  req.Experience,
		About:       req.About,
		Fees:        req.Fees,
		Address:     addr,
		Available:   true,
		SlotsBooked: booking.SlotMap{},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := h.doctors().InsertOne(c.Request.Context(), doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusBadRequest, "Email is already registered!")
			return
		}
		h.Log.Errorw("doctor insert failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to add doctor")
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Doctor Added!")
}

// AllDoctors lists every doctor for the admin console, passwords stripped.
func (h *Handler) AllDoctors(c *gin.Context) {
	ctx := c.Request.Context()
	cursor, err := h.doctors().Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}))
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

// ChangeAvailability toggles a doctor's available flag from the admin console.
func (h *Handler) ChangeAvailability(c *gin.Context) {
	var req struct {
		DocID string `json:"docId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	docID, err := primitive.ObjectIDFromHex(req.DocID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	ctx := c.Request.Context()

	var doc models.Doctor
	if err := h.doctors().FindOne(ctx, bson.M{"_id": docID}).Decode(&doc); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Doctor Not Found!")
		return
	}

	_, err = h.doctors().UpdateOne(ctx, bson.M{"_id": docID},
		bson.M{"$set": bson.M{"available": !doc.Available}})
	if err != nil {
		h.Log.Errorw("availability toggle failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to change availability")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Availability Changed!")
}

// AdminAppointments lists every appointment on the platform.
func (h *Handler) AdminAppointments(c *gin.Context) {
	appointments, err := h.findAppointments(c, bson.M{})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}

// AdminCancelAppointment cancels any appointment; the admin needs no
// ownership over it.
func (h *Handler) AdminCancelAppointment(c *gin.Context) {
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

	if err := h.cancelAndRelease(ctx, &apt); err != nil {
		if errors.Is(err, errNotActive) {
			utils.JSONError(c, http.StatusBadRequest, "Appointment Already Closed!")
			return
		}
		h.Log.Errorw("cancel failed", "appointment", aptID.Hex(), "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Cancellation failed! Try again.")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Appointment Cancelled!")
}

// AdminDashboard aggregates the admin console dashboard numbers.
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	doctorCount, err := h.doctors().CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	patientCount, err := h.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	appointments, err := h.findAppointments(c, bson.M{})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"dashData": gin.H{
		"doctors":            doctorCount,
		"patients":           patientCount,
		"appointments":       len(appointments),
		"latestAppointments": latest(appointments, 5),
	}})
}
