package integrity

import (
	"context"

	"listing-media/core/storage"
	"listing-media/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	prefixes []string
	db       *gorm.DB
	logger   *zap.Logger
}

// NewService creates a new integrity service. prefixes are the bucket prefixes
// that must exist.
func NewService(client storage.Client, bucket string, prefixes []string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		prefixes: prefixes,
		db:       db,
		logger:   logger,
	}
}

// CheckStructure returns the missing bucket prefixes.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.prefixes)
}

// FixStructure creates the missing prefixes.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema verifies the index tables against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}
