package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/srs-go-api/internal/access"
	"github.com/noah-isme/srs-go-api/internal/models"
)

const studentColumns = `s.id, s.owner_id, s.name, s.roll_no, s.subject_id, s.marks, s.created_at, s.updated_at, subj.name AS subject_name`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students visible within the scope, optionally narrowed by a
// free-text search over name, roll number text and subject name. Rows come
// back in insertion order. PageSize <= 0 disables pagination.
func (r *StudentRepository) List(ctx context.Context, scope access.Scope, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := "FROM students s JOIN subjects subj ON subj.id = s.subject_id"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if !scope.All {
		conditions = append(conditions, fmt.Sprintf("s.owner_id = $%d", len(args)+1))
		args = append(args, scope.OwnerID)
	}
	if filter.Search != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(s.name) LIKE $%d OR CAST(s.roll_no AS TEXT) LIKE $%d OR LOWER(subj.name) LIKE $%d)", idx, idx, idx))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	query := fmt.Sprintf("SELECT %s %s ORDER BY s.created_at ASC, s.id ASC", studentColumns, base)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.PageSize, (page-1)*filter.PageSize)
	}

	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(s.id) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListAll returns every student record with subject context, in insertion
// order. The dashboard aggregates over this unscoped set.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s JOIN subjects subj ON subj.id = s.subject_id ORDER BY s.created_at ASC, s.id ASC`, studentColumns)
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list all students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student with subject context by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s JOIN subjects subj ON subj.id = s.subject_id WHERE s.id = $1`, studentColumns)
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, owner_id, name, roll_no, subject_id, marks, created_at, updated_at)
        VALUES (:id, :owner_id, :name, :roll_no, :subject_id, :marks, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, roll_no = :roll_no, subject_id = :subject_id, marks = :marks, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student record.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM students WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
