package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	inventoryRepo "pizzeria/database/repository/inventory"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

type Service struct {
	repo       inventoryRepo.InventoryRepository
	dispatcher notification.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repo inventoryRepo.InventoryRepository, dispatcher notification.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, dispatcher: dispatcher, logger: logger, now: time.Now}
}

func needsRestock(current, min int) bool {
	return current <= min
}

func (s *Service) Create(ctx context.Context, req models.InventoryItemRequest) (*models.InventoryItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, utils.NewValidationError("name", "is required")
	}
	if req.CurrentStock < 0 || req.MinStock < 0 {
		return nil, utils.NewValidationError("current_stock", "stock levels cannot be negative")
	}
	item := &models.InventoryItem{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Category:     req.Category,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		Unit:         req.Unit,
		CostPerUnit:  req.CostPerUnit,
		NeedsRestock: needsRestock(req.CurrentStock, req.MinStock),
		LastUpdated:  s.now(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, category string, restock *bool) ([]models.InventoryItem, error) {
	return s.repo.List(ctx, category, restock)
}

func (s *Service) Get(ctx context.Context, id string) (*models.InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the item's attributes and recomputes needs_restock.
func (s *Service) Update(ctx context.Context, id string, req models.InventoryItemRequest) (*models.InventoryItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, utils.NewValidationError("name", "is required")
	}
	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restock := needsRestock(req.CurrentStock, req.MinStock)
	fields := map[string]any{
		"name":          req.Name,
		"category":      req.Category,
		"current_stock": req.CurrentStock,
		"min_stock":     req.MinStock,
		"unit":          req.Unit,
		"cost_per_unit": req.CostPerUnit,
		"needs_restock": restock,
		"last_updated":  s.now(),
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.alertOnCrossing(ctx, prev.NeedsRestock, item)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AdjustStock applies a set, add or subtract. Subtraction never goes below zero.
func (s *Service) AdjustStock(ctx context.Context, id string, upd models.StockUpdate) (*models.InventoryItem, error) {
	if upd.Quantity < 0 {
		return nil, utils.NewValidationError("quantity", "cannot be negative")
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var stock int
	switch upd.Operation {
	case models.StockSet:
		stock = upd.Quantity
	case models.StockAdd:
		stock = item.CurrentStock + upd.Quantity
	case models.StockSubtract:
		stock = item.CurrentStock - upd.Quantity
		if stock < 0 {
			stock = 0
		}
	default:
		return nil, utils.NewValidationError("operation", fmt.Sprintf("unknown operation %q, use set, add or subtract", upd.Operation))
	}

	wasLow := item.NeedsRestock
	restock := needsRestock(stock, item.MinStock)
	now := s.now()
	if err := s.repo.Update(ctx, id, map[string]any{
		"current_stock": stock,
		"needs_restock": restock,
		"last_updated":  now,
	}); err != nil {
		return nil, err
	}
	item.CurrentStock = stock
	item.NeedsRestock = restock
	item.LastUpdated = now

	s.logger.Info("Stock adjusted",
		zap.String("item_id", id),
		zap.String("operation", string(upd.Operation)),
		zap.Int("quantity", upd.Quantity),
		zap.Int("current_stock", stock))
	s.alertOnCrossing(ctx, wasLow, item)
	return item, nil
}

func (s *Service) alertOnCrossing(ctx context.Context, wasLow bool, item *models.InventoryItem) {
	if wasLow || !item.NeedsRestock {
		return
	}
	s.logger.Warn("Inventory item needs restock", zap.String("item_id", item.ID), zap.String("name", item.Name), zap.Int("current_stock", item.CurrentStock))
	s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindLowStock, Item: item})
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	categories := []string{}
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		categories = append(categories, it.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// LowStockAlerts lists items needing restock, emptiest first.
func (s *Service) LowStockAlerts(ctx context.Context) ([]models.LowStockAlert, error) {
	items, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]models.LowStockAlert, 0, len(items))
	for _, it := range items {
		priority := PriorityMedium
		if it.CurrentStock == 0 {
			priority = PriorityHigh
		}
		alerts = append(alerts, models.LowStockAlert{InventoryItem: it, Priority: priority})
	}
	return alerts, nil
}

func (s *Service) CountLowStock(ctx context.Context) (int64, error) {
	return s.repo.CountLowStock(ctx)
}
