package contact

import (
	"context"
	"net/mail"
	"strings"
	"time"

	contactRepo "pizzeria/database/repository/contact"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultListLimit = 100

type Service struct {
	repo       contactRepo.ContactRepository
	dispatcher notification.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repo contactRepo.ContactRepository, dispatcher notification.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// Create stores a contact form submission and emails the admins about it.
func (s *Service) Create(ctx context.Context, req models.ContactRequest) (*models.Contact, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, utils.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, utils.NewValidationError("message", "is required")
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, utils.NewValidationError("email", "is not a valid address")
		}
	}

	c := &models.Contact{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Contact message received", zap.String("contact_id", c.ID))
	s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindContactReceived, Contact: c})
	return c, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, limit)
}
