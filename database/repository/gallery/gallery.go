package galleryRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

type GalleryRepository interface {
	Create(ctx context.Context, img *models.GalleryImage) error
	GetByID(ctx context.Context, id string) (*models.GalleryImage, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, eventID string, featuredOnly bool, limit int) ([]models.GalleryImage, error)
}

type storeGalleryRepo struct {
	coll database.Collection
}

func NewGalleryRepo(store database.Store) GalleryRepository {
	return &storeGalleryRepo{coll: store.Collection(database.Gallery)}
}

func (r *storeGalleryRepo) Create(ctx context.Context, img *models.GalleryImage) error {
	return database.Translate("create gallery image", "image", img.ID, r.coll.Create(ctx, img.ID, img))
}

func (r *storeGalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	var img models.GalleryImage
	if err := r.coll.Get(ctx, id, &img); err != nil {
		return nil, database.Translate("fetch gallery image", "image", id, err)
	}
	return &img, nil
}

func (r *storeGalleryRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return database.Translate("update gallery image", "image", id, r.coll.Update(ctx, id, fields))
}

func (r *storeGalleryRepo) Delete(ctx context.Context, id string) error {
	return database.Translate("delete gallery image", "image", id, r.coll.Delete(ctx, id))
}

func (r *storeGalleryRepo) List(ctx context.Context, eventID string, featuredOnly bool, limit int) ([]models.GalleryImage, error) {
	q := database.Query{}
	if eventID != "" {
		q = q.Where("event_id", database.OpEq, eventID)
	}
	if featuredOnly {
		q = q.Where("is_featured", database.OpEq, true)
	}
	q = q.OrderBy("uploaded_at", true).Take(limit)

	var out []models.GalleryImage
	if err := r.coll.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query gallery", "image", "", err)
	}
	return out, nil
}
