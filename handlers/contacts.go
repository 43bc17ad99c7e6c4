package handlers

import (
	"net/http"

	"pizzeria/models"
	"pizzeria/services/contact"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	Service *contact.Service
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid contact", err.Error())
		return
	}
	ct, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to save contact", err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.Service.List(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list contacts", err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
