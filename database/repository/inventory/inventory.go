package inventoryRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id string) (*models.InventoryItem, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// List filters by category when non-empty and by needs_restock when non-nil, ordered by name.
	List(ctx context.Context, category string, needsRestock *bool) ([]models.InventoryItem, error)
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
	CountLowStock(ctx context.Context) (int64, error)
}

type storeInventoryRepo struct {
	coll database.Collection
}

func NewInventoryRepo(store database.Store) InventoryRepository {
	return &storeInventoryRepo{coll: store.Collection(database.Inventory)}
}

func (r *storeInventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	return database.Translate("create inventory item", "inventory item", item.ID, r.coll.Create(ctx, item.ID, item))
}

func (r *storeInventoryRepo) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.coll.Get(ctx, id, &item); err != nil {
		return nil, database.Translate("fetch inventory item", "inventory item", id, err)
	}
	return &item, nil
}

func (r *storeInventoryRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return database.Translate("update inventory item", "inventory item", id, r.coll.Update(ctx, id, fields))
}

func (r *storeInventoryRepo) Delete(ctx context.Context, id string) error {
	return database.Translate("delete inventory item", "inventory item", id, r.coll.Delete(ctx, id))
}

func (r *storeInventoryRepo) List(ctx context.Context, category string, needsRestock *bool) ([]models.InventoryItem, error) {
	q := database.Query{}
	if category != "" {
		q = q.Where("category", database.OpEq, category)
	}
	if needsRestock != nil {
		q = q.Where("needs_restock", database.OpEq, *needsRestock)
	}

	var out []models.InventoryItem
	if err := r.coll.Find(ctx, q.OrderBy("name", false), &out); err != nil {
		return nil, database.Translate("query inventory", "inventory item", "", err)
	}
	return out, nil
}

func (r *storeInventoryRepo) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	q := database.Query{}.Where("needs_restock", database.OpEq, true).OrderBy("current_stock", false)

	var out []models.InventoryItem
	if err := r.coll.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query low stock", "inventory item", "", err)
	}
	return out, nil
}

func (r *storeInventoryRepo) CountLowStock(ctx context.Context) (int64, error) {
	n, err := r.coll.Count(ctx, database.Query{}.Where("needs_restock", database.OpEq, true))
	if err != nil {
		return 0, database.Translate("count low stock", "inventory item", "", err)
	}
	return n, nil
}
