package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/booking"
	"github.com/docslot/docslot-api/internal/middleware"
	"github.com/docslot/docslot-api/internal/models"
	"github.com/docslot/docslot-api/internal/payment"
	"github.com/docslot/docslot-api/internal/utils"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterUser creates a patient account and returns a signed token.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	ctx := c.Request.Context()

	// The unique index on email backs this check against concurrent registrations.
	count, err := h.users().CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		h.Log.Errorw("register: email lookup failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed! Try again.")
		return
	}
	if count > 0 {
		utils.JSONError(c, http.StatusBadRequest, "Email is already registered! Login instead.")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed! Try again.")
		return
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if _, err := h.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusBadRequest, "Email is already registered! Login instead.")
			return
		}
		h.Log.Errorw("register: insert failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed! Try again.")
		return
	}

	token, err := h.Tokens.Generate(user.ID.Hex(), auth.RoleUser)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed! Try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"token": token})
}

// LoginUser authenticates a patient and returns a signed token.
func (h *Handler) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	var user models.User
	err := h.users().FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil || !auth.CheckPasswordHash(req.Password, user.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid Credentials!")
		return
	}

	token, err := h.Tokens.Generate(user.ID.Hex(), auth.RoleUser)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Login failed! Try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token})
}

// GetProfile returns the authenticated patient's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user ID in token")
		return
	}

	var user models.User
	if err := h.users().FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.JSONError(c, http.StatusNotFound, "User Not Found!")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"userData": user})
}

// UpdateProfile updates the patient's profile fields. The avatar arrives as
// an optional multipart file and is pushed to the image store.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user ID in token")
		return
	}

	var req struct {
		Name    string `form:"name" binding:"required"`
		Phone   string `form:"phone" binding:"required"`
		Address string `form:"address"`
		DOB     string `form:"dob" binding:"required"`
		Gender  string `form:"gender" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	update := bson.M{
		"name":   req.Name,
		"phone":  req.Phone,
		"dob":    req.DOB,
		"gender": req.Gender,
	}
	if req.Address != "" {
		var addr models.Address
		if err := json.Unmarshal([]byte(req.Address), &addr); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid address format")
			return
		}
		update["address"] = addr
	}

	ctx := c.Request.Context()

	if url, upErr := h.uploadImage(c, "image"); upErr == nil {
		update["image"] = url
	} else if !errors.Is(upErr, http.ErrMissingFile) && !errors.Is(upErr, http.ErrNotMultipart) {
		h.Log.Errorw("profile image upload failed", "err", upErr)
		utils.JSONError(c, http.StatusInternalServerError, "Image upload failed")
		return
	}

	res, err := h.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
	if err != nil {
		h.Log.Errorw("profile update failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Profile update failed")
		return
	}
	if res.MatchedCount == 0 {
		utils.JSONError(c, http.StatusNotFound, "User Not Found!")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Profile Updated")
}

type bookRequest struct {
	DocID    string `json:"docId" binding:"required"`
	SlotDate string `json:"slotDate" binding:"required"`
	SlotTime string `json:"slotTime" binding:"required"`
}

// BookAppointment reserves a slot and creates the appointment. The slot
// reservation is a single conditional update, so a concurrent booking for the
// same (date, time) loses the race cleanly instead of double-booking.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	docID, err := primitive.ObjectIDFromHex(req.DocID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user ID in token")
		return
	}

	ctx := c.Request.Context()

	var doc models.Doctor
	if err := h.doctors().FindOne(ctx, bson.M{"_id": docID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Doctor Not Found!")
			return
		}
		h.Log.Errorw("booking: doctor lookup failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Booking failed! Try again.")
		return
	}
	if !doc.Available {
		utils.JSONError(c, http.StatusBadRequest, "Doctor Not Available!")
		return
	}
	if doc.SlotsBooked.Has(req.SlotDate, req.SlotTime) {
		utils.JSONError(c, http.StatusBadRequest, "Slot Not Available!")
		return
	}

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.JSONError(c, http.StatusNotFound, "User Not Found!")
		return
	}

	res, err := h.doctors().UpdateOne(ctx,
		booking.ReserveFilter(docID, req.SlotDate, req.SlotTime),
		booking.ReserveUpdate(req.SlotDate, req.SlotTime))
	if err != nil {
		h.Log.Errorw("booking: slot reserve failed", "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Booking failed! Try again.")
		return
	}
	if res.MatchedCount == 0 {
		// lost the race, or the doctor flipped unavailable in between
		utils.JSONError(c, http.StatusBadRequest, "Slot Not Available!")
		return
	}

	apt := models.Appointment{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		DocID:    docID,
		UserData: user.Snapshot(),
		DocData:  doc.Snapshot(),
		SlotDate: req.SlotDate,
		SlotTime: req.SlotTime,
		Amount:   doc.Fees,
		Status:   models.StatusActive,
		BookedAt: time.Now().UTC(),
	}
	if _, err := h.appointments().InsertOne(ctx, apt); err != nil {
		h.Log.Errorw("booking: appointment insert failed", "err", err)
		// hand the slot back so it does not stay orphaned
		if _, relErr := h.doctors().UpdateOne(ctx, bson.M{"_id": docID},
			booking.ReleaseUpdate(req.SlotDate, req.SlotTime)); relErr != nil {
			h.Log.Errorw("booking: slot release after failed insert", "err", relErr)
		}
		utils.JSONError(c, http.StatusInternalServerError, "Booking failed! Try again.")
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "Appointment Booked!")
}

// ListAppointments returns the authenticated patient's appointments,
// newest first.
func (h *Handler) ListAppointments(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user ID in token")
		return
	}

	appointments, err := h.findAppointments(c, bson.M{"userId": userID})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}

// CancelAppointment cancels one of the caller's own appointments and
// releases the doctor's slot.
func (h *Handler) CancelAppointment(c *gin.Context) {
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
	if apt.UserID.Hex() != c.GetString(middleware.CtxUserID) {
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
	utils.JSONMessage(c, http.StatusOK, "Appointment Cancelled!")
}

// PaymentOrder creates a payment-gateway order for an appointment. Cancelled
// or missing appointments are rejected before touching the gateway.
func (h *Handler) PaymentOrder(c *gin.Context) {
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
	err = h.appointments().FindOne(ctx, bson.M{"_id": aptID}).Decode(&apt)
	if err != nil || apt.Status == models.StatusCancelled {
		utils.JSONError(c, http.StatusBadRequest, "Appointment Cancelled or Not Found!")
		return
	}

	// gateway amounts are in minor units
	order, err := h.Payments.CreateOrder(ctx, apt.Amount*100, h.Cfg.Currency, apt.ID.Hex())
	if err != nil {
		h.Log.Errorw("payment order creation failed", "appointment", aptID.Hex(), "err", err)
		utils.JSONError(c, http.StatusBadGateway, "Payment order creation failed")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"order": order})
}

// VerifyPayment checks an order's status with the gateway and records the
// payment on the appointment named by the order's receipt.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing Details...")
		return
	}

	ctx := c.Request.Context()

	order, err := h.Payments.FetchOrder(ctx, req.RazorpayOrderID)
	if err != nil {
		h.Log.Errorw("payment verification failed", "order", req.RazorpayOrderID, "err", err)
		utils.JSONError(c, http.StatusBadGateway, "Payment verification failed")
		return
	}
	if order.Status != payment.OrderStatusPaid {
		utils.JSONError(c, http.StatusUnauthorized, "Payment Failed...")
		return
	}

	aptID, err := primitive.ObjectIDFromHex(order.Receipt)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid order receipt")
		return
	}

	// payment is only recordable while the appointment is not cancelled
	res, err := h.appointments().UpdateOne(ctx,
		bson.M{"_id": aptID, "status": bson.M{"$ne": models.StatusCancelled}},
		bson.M{"$set": bson.M{"paid": true}})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Payment verification failed")
		return
	}
	if res.MatchedCount == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Appointment Cancelled or Not Found!")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Payment Successful!")
}

// uploadImage reads a multipart file and pushes it to the image store,
// returning the stored object's URL.
func (h *Handler) uploadImage(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return h.Images.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), data)
}
