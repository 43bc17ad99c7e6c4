package models

import "time"

type InventoryItem struct {
	ID           string    `json:"id" bson:"id" firestore:"id"`
	Name         string    `json:"name" bson:"name" firestore:"name"`
	Category     string    `json:"category" bson:"category" firestore:"category"` // ingredientes, utensilios, equipos
	CurrentStock int       `json:"current_stock" bson:"current_stock" firestore:"current_stock"`
	MinStock     int       `json:"min_stock" bson:"min_stock" firestore:"min_stock"`
	Unit         string    `json:"unit" bson:"unit" firestore:"unit"`
	CostPerUnit  float64   `json:"cost_per_unit" bson:"cost_per_unit" firestore:"cost_per_unit"`
	NeedsRestock bool      `json:"needs_restock" bson:"needs_restock" firestore:"needs_restock"`
	LastUpdated  time.Time `json:"last_updated" bson:"last_updated" firestore:"last_updated"`
}

type InventoryItemRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CurrentStock int     `json:"current_stock"`
	MinStock     int     `json:"min_stock"`
	Unit         string  `json:"unit"`
	CostPerUnit  float64 `json:"cost_per_unit"`
}

type StockOperation string

const (
	StockSet      StockOperation = "set"
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
)

type StockUpdate struct {
	Quantity  int            `json:"quantity"`
	Operation StockOperation `json:"operation"`
}

type LowStockAlert struct {
	InventoryItem
	Priority string `json:"priority"` // high when out of stock
}
