package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// CreateSubjectRequest holds payload for creating subjects.
type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// SubjectService handles administrative subject management. Route-level RBAC
// keeps mutation admin-only.
type SubjectService struct {
	repo      subjectRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo subjectRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all subjects.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Create registers a new subject. The dashboard lists every subject, even
// with zero students, so the cached payload is dropped here too.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := &models.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.invalidateDashboard(ctx)
	return subject, nil
}

// Delete removes a subject; dependent students cascade away at the database
// level, so the dashboard cache is dropped too.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *SubjectService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
