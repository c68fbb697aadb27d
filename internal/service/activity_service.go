package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

type activityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context) ([]models.ActivityLog, error)
}

// ActivityService is the audit trail front door. Mutating operations treat a
// failed Record as their own failure; authentication paths call RecordBestEffort
// so an audit outage never blocks a login.
type ActivityService struct {
	repo   activityRepository
	logger *zap.Logger
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo activityRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, logger: logger}
}

// Record appends one audit entry. userID is nil for failed login attempts.
func (s *ActivityService) Record(ctx context.Context, userID *string, action, description, ip, userAgent string) error {
	entry := &models.ActivityLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		UserAgent:   userAgent,
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record activity")
	}
	return nil
}

// RecordBestEffort appends an entry and only logs on failure.
func (s *ActivityService) RecordBestEffort(ctx context.Context, userID *string, action, description, ip, userAgent string) {
	if err := s.Record(ctx, userID, action, description, ip, userAgent); err != nil {
		s.logger.Warn("activity log write failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// List returns the audit trail newest-first.
func (s *ActivityService) List(ctx context.Context) ([]models.ActivityLog, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activity logs")
	}
	return entries, nil
}
