package gallery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	galleryRepo "pizzeria/database/repository/gallery"
	"pizzeria/models"
	"pizzeria/services/storage"
	"pizzeria/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxDimension         = 1920
	jpegQuality          = 85
	defaultListLimit     = 50
	homepageFeaturedSize = 6
)

// Upload carries the optional metadata sent with an image.
type Upload struct {
	Title       string
	Description string
	EventID     string
	IsFeatured  bool
}

type Service struct {
	repo   galleryRepo.GalleryRepository
	blobs  storage.BlobStore
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo galleryRepo.GalleryRepository, blobs storage.BlobStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, blobs: blobs, logger: logger, now: time.Now}
}

func objectPath(id string) string {
	return fmt.Sprintf("gallery/%s.jpg", id)
}

// Upload decodes the image, fits it within 1920x1920 and stores it as JPEG.
func (s *Service) Upload(ctx context.Context, src io.Reader, contentType string, meta Upload) (*models.GalleryImage, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, utils.NewValidationError("file", "must be an image")
	}

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, utils.NewValidationError("file", fmt.Sprintf("failed to decode image: %v", err))
	}
	b := img.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	id := uuid.New().String()
	path := objectPath(id)
	url, err := s.blobs.Put(ctx, path, "image/jpeg", buf.Bytes())
	if err != nil {
		return nil, &utils.StorageError{Op: "upload image", Err: err}
	}

	bounds := img.Bounds()
	rec := &models.GalleryImage{
		ID:          id,
		URL:         url,
		BlobPath:    path,
		EventID:     meta.EventID,
		Title:       meta.Title,
		Description: meta.Description,
		IsFeatured:  meta.IsFeatured,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		UploadedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if delErr := s.blobs.Delete(ctx, path); delErr != nil {
			s.logger.Warn("Failed to remove orphaned gallery blob", zap.String("path", path), zap.Error(delErr))
		}
		return nil, err
	}
	s.logger.Info("Gallery image uploaded", zap.String("image_id", id), zap.Int("width", rec.Width), zap.Int("height", rec.Height))
	return rec, nil
}

func (s *Service) List(ctx context.Context, eventID string, featuredOnly bool, limit int) ([]models.GalleryImage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, eventID, featuredOnly, limit)
}

func (s *Service) Featured(ctx context.Context) ([]models.GalleryImage, error) {
	return s.repo.List(ctx, "", true, homepageFeaturedSize)
}

func (s *Service) Get(ctx context.Context, id string) (*models.GalleryImage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, upd models.GalleryImageUpdate) (*models.GalleryImage, error) {
	fields := map[string]any{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.IsFeatured != nil {
		fields["is_featured"] = *upd.IsFeatured
	}
	if len(fields) == 0 {
		return nil, utils.NewValidationError("body", "nothing to update")
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the record. A failed blob delete is logged only.
func (s *Service) Delete(ctx context.Context, id string) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img.BlobPath != "" {
		if err := s.blobs.Delete(ctx, img.BlobPath); err != nil {
			s.logger.Warn("Failed to delete gallery blob", zap.String("image_id", id), zap.String("path", img.BlobPath), zap.Error(err))
		}
	}
	return s.repo.Delete(ctx, id)
}
