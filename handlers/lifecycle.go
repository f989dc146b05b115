package handlers

import (
	"context"
	"net/http"
	"strconv"

	"matehub/models"
	"matehub/utils"

	"github.com/gin-gonic/gin"
)

type transitionFunc func(ctx context.Context, who models.Identity, txnID string) (*models.Transaction, error)

func (h *BookingHandler) transition(c *gin.Context, action transitionFunc, message string) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	txn, err := action(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "transaction": txn})
}

// AcceptHandler handles POST /api/booking/:id/accept.
func (h *BookingHandler) AcceptHandler(c *gin.Context) {
	h.transition(c, h.Service.Accept, "Booking accepted")
}

// RejectHandler handles POST /api/booking/:id/reject.
func (h *BookingHandler) RejectHandler(c *gin.Context) {
	h.transition(c, h.Service.Reject, "Booking rejected and refunded")
}

// CancelHandler handles POST /api/booking/cancel/:id.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	h.transition(c, h.Service.Cancel, "Booking canceled and refunded")
}

// EndHandler handles POST /api/booking/end/:id.
func (h *BookingHandler) EndHandler(c *gin.Context) {
	h.transition(c, h.Service.End, "Booking ended")
}

type listFunc func(ctx context.Context, who models.Identity, page models.PageRequest) (*models.TransactionPage, error)

func (h *BookingHandler) list(c *gin.Context, fetch listFunc) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	page, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := fetch(c.Request.Context(), who, page)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// pageRequest parses the optional page and pageSize query parameters.
func pageRequest(c *gin.Context) (models.PageRequest, bool) {
	var page models.PageRequest
	for _, q := range []struct {
		key string
		dst *int64
	}{{"page", &page.Page}, {"pageSize", &page.PageSize}} {
		raw := c.Query(q.key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid pagination", q.key+" must be a positive integer")
			return models.PageRequest{}, false
		}
		*q.dst = n
	}
	return page.Normalize(), true
}

// ListRequestsHandler handles GET /api/booking/requests.
func (h *BookingHandler) ListRequestsHandler(c *gin.Context) {
	h.list(c, h.Service.ListRequests)
}

// ListRenterTransactionsHandler handles GET /api/booking/transactions.
func (h *BookingHandler) ListRenterTransactionsHandler(c *gin.Context) {
	h.list(c, h.Service.ListRenterTransactions)
}

// ListMateTransactionsHandler handles GET /api/booking/mate.
func (h *BookingHandler) ListMateTransactionsHandler(c *gin.Context) {
	h.list(c, h.Service.ListMateTransactions)
}
