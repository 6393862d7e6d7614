package integrity

import (
	"context"

	"doc-browser/core/storage"
	"doc-browser/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	db      *gorm.DB
	profile string
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, profile string) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		db:      db,
		profile: profile,
	}
}

// CheckStructure returns a list of missing bucket prefixes.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing prefixes.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckManifest validates the Drive manifest JSON.
func (s *Service) CheckManifest(ctx context.Context) (*checks.ManifestReport, error) {
	return checks.CheckManifest(ctx, s.client, s.bucket)
}

// CheckSchema verifies the database schema against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchemaIntegrity(s.db, s.profile)
}
