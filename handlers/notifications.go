package handlers

import (
	"net/http"

	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Service *notification.Service
}

func (h *NotificationHandler) Send(c *gin.Context) {
	var req models.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid notification", err.Error())
		return
	}
	sent, err := h.Service.Send(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to send notification", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": sent})
}

func (h *NotificationHandler) List(c *gin.Context) {
	records, err := h.Service.List(c.Request.Context(), queryInt(c, "days_back", 7), c.Query("status"), queryInt(c, "limit", 100))
	if err != nil {
		utils.RespondError(c, "Failed to list notifications", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *NotificationHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context(), queryInt(c, "days", 30))
	if err != nil {
		utils.RespondError(c, "Failed to compute notification stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *NotificationHandler) Test(c *gin.Context) {
	var body struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid test request", err.Error())
		return
	}
	sent, err := h.Service.Test(c.Request.Context(), body.Phone, body.Message)
	if err != nil {
		utils.RespondError(c, "Failed to send test notification", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": sent})
}

func (h *NotificationHandler) SendDailyReminders(c *gin.Context) {
	sent, total, err := h.Service.SendDailyReminders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to send reminders", err)
		return
	}
	getLogger(c).Info("Manual reminder run", zap.Int("sent", sent), zap.Int("total", total))
	c.JSON(http.StatusOK, gin.H{"sent": sent, "total": total})
}

func (h *NotificationHandler) BulkSend(c *gin.Context) {
	var req models.BulkSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid bulk request", err.Error())
		return
	}
	res, err := h.Service.BulkSend(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to send bulk notification", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
