package handlers

import (
	"net/http"

	"pizzeria/models"
	"pizzeria/services/booking"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

// CreateBooking prices and stores a booking request.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}
	b, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create booking", err)
		return
	}
	logger.Info("Booking accepted", zap.String("booking_id", b.ID))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	bookings, err := h.Service.List(c.Request.Context(), status, queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Booking not available", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var upd models.BookingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking update", err.Error())
		return
	}
	b, err := h.Service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, "Failed to update booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to cancel booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": b})
}

func (h *BookingHandler) Calendar(c *gin.Context) {
	year, okYear := paramInt(c, "year")
	month, okMonth := paramInt(c, "month")
	if !okYear || !okMonth {
		utils.JSONError(c, http.StatusBadRequest, "Invalid calendar period", "year and month must be numbers")
		return
	}
	entries, err := h.Service.Calendar(c.Request.Context(), year, month)
	if err != nil {
		utils.RespondError(c, "Failed to load calendar", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
