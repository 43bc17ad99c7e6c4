package handlers

import (
	"net/http"

	"pizzeria/models"
	"pizzeria/services/event"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	Service event.EventService
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}
	e, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create event", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.Service.List(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) PublishedEvents(c *gin.Context) {
	events, err := h.Service.Published(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	e, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Event not available", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) EventsByBooking(c *gin.Context) {
	events, err := h.Service.ByBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		utils.RespondError(c, "Failed to list events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var upd models.EventUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid event update", err.Error())
		return
	}
	e, err := h.Service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, "Failed to update event", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) UpdateFinancials(c *gin.Context) {
	var fin models.EventFinancials
	if err := c.ShouldBindJSON(&fin); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid financials", err.Error())
		return
	}
	e, err := h.Service.UpdateFinancials(c.Request.Context(), c.Param("id"), fin)
	if err != nil {
		utils.RespondError(c, "Failed to update financials", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// RequestReview always answers 200 once the event is valid; success reports delivery.
func (h *EventHandler) RequestReview(c *gin.Context) {
	ok, err := h.Service.RequestReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to request review", err)
		return
	}
	msg := "Review request sent"
	if !ok {
		msg = "Review request could not be delivered"
	}
	c.JSON(http.StatusOK, gin.H{"success": ok, "message": msg})
}
