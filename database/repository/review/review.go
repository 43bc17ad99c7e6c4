package reviewRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, approvedOnly bool, limit int) ([]models.Review, error)
	Approved(ctx context.Context) ([]models.Review, error)
	ApprovedByEvent(ctx context.Context, eventID string) ([]models.Review, error)
	// Top returns approved reviews rated at least minRating, best and newest first.
	Top(ctx context.Context, minRating, limit int) ([]models.Review, error)
	CountPending(ctx context.Context) (int64, error)
}

type storeReviewRepo struct {
	coll database.Collection
}

func NewReviewRepo(store database.Store) ReviewRepository {
	return &storeReviewRepo{coll: store.Collection(database.Reviews)}
}

func (r *storeReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return database.Translate("create review", "review", rv.ID, r.coll.Create(ctx, rv.ID, rv))
}

func (r *storeReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var rv models.Review
	if err := r.coll.Get(ctx, id, &rv); err != nil {
		return nil, database.Translate("fetch review", "review", id, err)
	}
	return &rv, nil
}

func (r *storeReviewRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return database.Translate("update review", "review", id, r.coll.Update(ctx, id, fields))
}

func (r *storeReviewRepo) Delete(ctx context.Context, id string) error {
	return database.Translate("delete review", "review", id, r.coll.Delete(ctx, id))
}

func (r *storeReviewRepo) find(ctx context.Context, q database.Query) ([]models.Review, error) {
	var out []models.Review
	if err := r.coll.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query reviews", "review", "", err)
	}
	return out, nil
}

func (r *storeReviewRepo) List(ctx context.Context, approvedOnly bool, limit int) ([]models.Review, error) {
	q := database.Query{}
	if approvedOnly {
		q = q.Where("is_approved", database.OpEq, true)
	}
	return r.find(ctx, q.OrderBy("created_at", true).Take(limit))
}

func (r *storeReviewRepo) Approved(ctx context.Context) ([]models.Review, error) {
	return r.find(ctx, database.Query{}.Where("is_approved", database.OpEq, true))
}

func (r *storeReviewRepo) ApprovedByEvent(ctx context.Context, eventID string) ([]models.Review, error) {
	q := database.Query{}.
		Where("event_id", database.OpEq, eventID).
		Where("is_approved", database.OpEq, true).
		OrderBy("created_at", true)
	return r.find(ctx, q)
}

func (r *storeReviewRepo) Top(ctx context.Context, minRating, limit int) ([]models.Review, error) {
	q := database.Query{}.
		Where("is_approved", database.OpEq, true).
		Where("rating", database.OpGte, minRating).
		OrderBy("rating", true).
		OrderBy("created_at", true).
		Take(limit)
	return r.find(ctx, q)
}

func (r *storeReviewRepo) CountPending(ctx context.Context) (int64, error) {
	n, err := r.coll.Count(ctx, database.Query{}.Where("is_approved", database.OpEq, false))
	if err != nil {
		return 0, database.Translate("count reviews", "review", "", err)
	}
	return n, nil
}
