package documents

import (
	"doc-browser/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Documents feature.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, profile string) *Feature {
	svc := NewService(db, client, bucket, logger, profile)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "documents"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for CLI commands that reuse the
// same load path.
func (f *Feature) Service() *Service {
	return f.service
}
