package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntentHandler handles POST /api/payment/create-payment-intent?bookingId=.
// The amount always comes from the stored hold.
func (h *BookingHandler) CreatePaymentIntentHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	res, err := h.Service.CreatePaymentIntent(c.Request.Context(), who, c.Query("bookingId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
