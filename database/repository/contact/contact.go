package contactRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

type ContactRepository interface {
	Create(ctx context.Context, c *models.Contact) error
	List(ctx context.Context, limit int) ([]models.Contact, error)
}

type storeContactRepo struct {
	coll database.Collection
}

func NewContactRepo(store database.Store) ContactRepository {
	return &storeContactRepo{coll: store.Collection(database.Contacts)}
}

func (r *storeContactRepo) Create(ctx context.Context, c *models.Contact) error {
	return database.Translate("create contact", "contact", c.ID, r.coll.Create(ctx, c.ID, c))
}

func (r *storeContactRepo) List(ctx context.Context, limit int) ([]models.Contact, error) {
	var out []models.Contact
	if err := r.coll.Find(ctx, database.Query{}.OrderBy("created_at", true).Take(limit), &out); err != nil {
		return nil, database.Translate("query contacts", "contact", "", err)
	}
	return out, nil
}
