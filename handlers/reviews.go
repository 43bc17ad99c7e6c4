package handlers

import (
	"net/http"

	"pizzeria/middleware"
	"pizzeria/models"
	"pizzeria/services/review"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Service *review.Service
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid review", err.Error())
		return
	}
	rv, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create review", err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// ListReviews shows approved reviews; admins may pass approved_only=false.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	approvedOnly := queryBool(c, "approved_only", true)
	if !middleware.IsAdmin(c) {
		approvedOnly = true
	}
	reviews, err := h.Service.List(c.Request.Context(), approvedOnly, queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) ReviewStats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to compute review stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	rv, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Review not available", err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	rv, err := h.Service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to approve review", err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func (h *ReviewHandler) EventReviews(c *gin.Context) {
	reviews, err := h.Service.ByEvent(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		utils.RespondError(c, "Failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) TopReviews(c *gin.Context) {
	reviews, err := h.Service.Top(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
