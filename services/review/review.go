package review

import (
	"context"
	"math"
	"strings"
	"time"

	reviewRepo "pizzeria/database/repository/review"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	topMinRating     = 4
	topLimit         = 6
)

type Service struct {
	repo       reviewRepo.ReviewRepository
	dispatcher notification.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repo reviewRepo.ReviewRepository, dispatcher notification.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// Create stores an unapproved review and alerts the admins.
func (s *Service) Create(ctx context.Context, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("rating", "must be between 1 and 5")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, utils.NewValidationError("client_name", "is required")
	}

	rv := &models.Review{
		ID:          uuid.New().String(),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		EventID:     req.EventID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindReviewCreated, Review: rv})
	return rv, nil
}

func (s *Service) List(ctx context.Context, approvedOnly bool, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, approvedOnly, limit)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id string) (*models.Review, error) {
	now := s.now()
	if err := s.repo.Update(ctx, id, map[string]any{"is_approved": true, "approved_at": now}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ByEvent(ctx context.Context, eventID string) ([]models.Review, error) {
	return s.repo.ApprovedByEvent(ctx, eventID)
}

func (s *Service) Top(ctx context.Context) ([]models.Review, error) {
	return s.repo.Top(ctx, topMinRating, topLimit)
}

// Stats summarizes approved reviews.
func (s *Service) Stats(ctx context.Context) (*models.ReviewStats, error) {
	reviews, err := s.repo.Approved(ctx)
	if err != nil {
		return nil, err
	}
	stats := &models.ReviewStats{RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if len(reviews) == 0 {
		return stats, nil
	}

	total := 0
	for _, rv := range reviews {
		total += rv.Rating
		if rv.Rating >= 1 && rv.Rating <= 5 {
			stats.RatingDistribution[rv.Rating]++
		}
	}
	stats.TotalReviews = len(reviews)
	stats.AverageRating = math.Round(float64(total)/float64(len(reviews))*100) / 100
	return stats, nil
}
