package handlers

import (
	"net/http"

	"matehub/utils"

	"github.com/gin-gonic/gin"
)

type reviewBody struct {
	Rating int `json:"rating" binding:"required"`
}

// ReviewHandler handles POST /review/booking/:id.
func (h *BookingHandler) ReviewHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	var body reviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid review", err.Error())
		return
	}
	review, err := h.Service.Review(c.Request.Context(), who, c.Param("id"), body.Rating)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
}
