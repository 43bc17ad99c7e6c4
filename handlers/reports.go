package handlers

import (
	"fmt"
	"net/http"

	"pizzeria/services/report"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Service *report.Service
}

func yearMonth(c *gin.Context) (int, int, bool) {
	year, okY := paramInt(c, "year")
	month, okM := paramInt(c, "month")
	if !okY || !okM {
		utils.JSONError(c, http.StatusBadRequest, "Invalid year or month", "")
		return 0, 0, false
	}
	return year, month, true
}

func (h *ReportHandler) Monthly(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	r, err := h.Service.Monthly(c.Request.Context(), year, month)
	if err != nil {
		utils.RespondError(c, "Failed to build monthly report", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) Annual(c *gin.Context) {
	year, ok := paramInt(c, "year")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid year", "")
		return
	}
	r, err := h.Service.Annual(c.Request.Context(), year)
	if err != nil {
		utils.RespondError(c, "Failed to build annual report", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.Service.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ReportHandler) TopClients(c *gin.Context) {
	clients, err := h.Service.TopClients(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		utils.RespondError(c, "Failed to rank clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// ExportMonthly streams the monthly report as an attachment.
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	exp, err := h.Service.ExportMonthly(c.Request.Context(), year, month, c.Query("format"))
	if err != nil {
		utils.RespondError(c, "Failed to export report", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exp.Filename))
	c.Data(http.StatusOK, exp.ContentType, exp.Data)
}
