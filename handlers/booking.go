package handlers

import (
	"net/http"

	"matehub/services/booking"
	"matehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the renter and mate booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

type createHoldBody struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Place     string `json:"place"`
	Purpose   string `json:"purpose"`
	Others    string `json:"others"`
}

// CreateHoldHandler handles POST /api/booking/book?mateId=.
func (h *BookingHandler) CreateHoldHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	var body createHoldBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}

	res, err := h.Service.CreateHold(c.Request.Context(), who, booking.CreateHoldRequest{
		MateID:    c.Query("mateId"),
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Place:     body.Place,
		Purpose:   body.Purpose,
		Others:    body.Others,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ConfirmBookingHandler handles POST /api/booking/confirmbooking?bookingId=.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	txn, err := h.Service.Confirm(c.Request.Context(), who, c.Query("bookingId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed", "transaction": txn})
}

// GetHoldSummaryHandler handles GET /api/booking/booking-data?bookingId=.
func (h *BookingHandler) GetHoldSummaryHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	summary, err := h.Service.GetHoldSummary(c.Request.Context(), who, c.Query("bookingId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMateProfileHandler handles GET /api/booking/mate-profile?mateId=.
func (h *BookingHandler) GetMateProfileHandler(c *gin.Context) {
	profile, err := h.Service.GetMateProfile(c.Request.Context(), c.Query("mateId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UnavailableSlotsHandler handles GET /api/booking/unavailable?mateId=&date=.
func (h *BookingHandler) UnavailableSlotsHandler(c *gin.Context) {
	slots, err := h.Service.UnavailableSlots(c.Request.Context(), c.Query("mateId"), c.Query("date"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unavailable": slots})
}
