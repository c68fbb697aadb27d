package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/srs-go-api/internal/models"
)

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects in insertion order.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, name, created_at FROM subjects ORDER BY created_at ASC, id ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject by ID.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, name, created_at FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO subjects (id, name, created_at) VALUES (:id, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Delete removes a subject. Dependent students go with it via the
// ON DELETE CASCADE constraint.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM subjects WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
