package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/srs-go-api/internal/models"
)

// ActivityRepository is the append-only store for the audit trail. Entries
// are never updated or deleted.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends one entry. The timestamp is assigned here at write time,
// never taken from the caller.
func (r *ActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO activity_logs (id, user_id, action, description, ip_address, user_agent, created_at)
        VALUES (:id, :user_id, :action, :description, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

// List returns entries newest-first.
func (r *ActivityRepository) List(ctx context.Context) ([]models.ActivityLog, error) {
	const query = `SELECT id, user_id, action, description, ip_address, user_agent, created_at
        FROM activity_logs ORDER BY created_at DESC, id DESC`
	var entries []models.ActivityLog
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return entries, nil
}
