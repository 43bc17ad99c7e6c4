package handlers

import (
	"net/http"
	"strconv"

	"pizzeria/models"
	"pizzeria/services/inventory"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Service *inventory.Service
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req models.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid inventory item", err.Error())
		return
	}
	item, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create inventory item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	var restock *bool
	if v, err := strconv.ParseBool(c.Query("needs_restock")); err == nil {
		restock = &v
	}
	items, err := h.Service.List(c.Request.Context(), c.Query("category"), restock)
	if err != nil {
		utils.RespondError(c, "Failed to list inventory", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Inventory item not available", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req models.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid inventory item", err.Error())
		return
	}
	item, err := h.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to update inventory item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete inventory item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var upd models.StockUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid stock update", err.Error())
		return
	}
	item, err := h.Service.AdjustStock(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, "Failed to update stock", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Categories(c *gin.Context) {
	cats, err := h.Service.Categories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *InventoryHandler) LowStockAlerts(c *gin.Context) {
	alerts, err := h.Service.LowStockAlerts(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list low stock alerts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "total": len(alerts)})
}
