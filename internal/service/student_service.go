package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/srs-go-api/internal/access"
	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, scope access.Scope, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type subjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type activityRecorder interface {
	Record(ctx context.Context, userID *string, action, description, ip, userAgent string) error
}

// CreateStudentRequest holds payload for creating students. Roll numbers and
// marks are plain integers; zero is a legal value for both and the grade scale
// covers the whole range.
type CreateStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	RollNo    int    `json:"roll_no"`
	SubjectID string `json:"subject_id" validate:"required"`
	Marks     int    `json:"marks"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	RollNo    int    `json:"roll_no"`
	SubjectID string `json:"subject_id" validate:"required"`
	Marks     int    `json:"marks"`
}

// StudentService handles student use-cases: every operation resolves the
// caller's scope and permission set first, and every successful mutation
// leaves exactly one audit entry.
type StudentService struct {
	repo      studentRepository
	subjects  subjectFinder
	activity  activityRecorder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, subjects subjectFinder, activity activityRecorder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, subjects: subjects, activity: activity, cache: cache, validator: validate, logger: logger}
}

// List returns students visible to the principal with pagination metadata.
// The free-text search matches name, roll number text and subject name.
func (s *StudentService) List(ctx context.Context, principal models.Principal, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	scope := access.ResolveListScope(principal)
	students, total, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	for i := range students {
		students[i].LetterGrade = students[i].Grade()
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pagination := &models.Pagination{Page: page, PageSize: filter.PageSize, TotalCount: total}
	return students, pagination, nil
}

// Get returns one student visible to the principal.
func (s *StudentService) Get(ctx context.Context, principal models.Principal, id string) (*models.StudentDetail, error) {
	detail, err := s.findVisible(ctx, access.ResolveListScope(principal), id)
	if err != nil {
		return nil, err
	}
	detail.LetterGrade = detail.Grade()
	return detail, nil
}

// Create registers a new student owned by the principal.
func (s *StudentService) Create(ctx context.Context, principal models.Principal, req CreateStudentRequest) (*models.StudentDetail, error) {
	if !access.Can(principal, access.PermAddStudent) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to add students")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	subject, err := s.resolveSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		OwnerID:   principal.UserID,
		Name:      req.Name,
		RollNo:    req.RollNo,
		SubjectID: subject.ID,
		Marks:     req.Marks,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	description := fmt.Sprintf("Added Student: %s (Roll %d)", student.Name, student.RollNo)
	if err := s.recordMutation(ctx, principal, models.ActionAdd, description); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	detail := &models.StudentDetail{Student: *student, SubjectName: subject.Name}
	detail.LetterGrade = detail.Grade()
	return detail, nil
}

// Update modifies an existing student. Records outside the caller's edit
// scope report not-found, the same as a missing id.
func (s *StudentService) Update(ctx context.Context, principal models.Principal, id string, req UpdateStudentRequest) (*models.StudentDetail, error) {
	if !access.Can(principal, access.PermChangeStudent) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to change students")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	detail, err := s.findVisible(ctx, access.ResolveEditScope(principal), id)
	if err != nil {
		return nil, err
	}
	subject, err := s.resolveSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	student := detail.Student
	student.Name = req.Name
	student.RollNo = req.RollNo
	student.SubjectID = subject.ID
	student.Marks = req.Marks
	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}

	description := fmt.Sprintf("Updated Student: %s", student.Name)
	if err := s.recordMutation(ctx, principal, models.ActionEdit, description); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	updated := &models.StudentDetail{Student: student, SubjectName: subject.Name}
	updated.LetterGrade = updated.Grade()
	return updated, nil
}

// Delete removes a student. The audit entry is written before the row goes
// away because its description needs the roll number.
func (s *StudentService) Delete(ctx context.Context, principal models.Principal, id string) error {
	if !access.Can(principal, access.PermDeleteStudent) {
		return appErrors.Clone(appErrors.ErrForbidden, "not allowed to delete students")
	}

	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	description := fmt.Sprintf("Deleted Student: %s (Roll %d)", detail.Name, detail.RollNo)
	if err := s.recordMutation(ctx, principal, models.ActionDelete, description); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *StudentService) findVisible(ctx context.Context, scope access.Scope, id string) (*models.StudentDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !scope.Contains(detail.OwnerID) {
		// out-of-scope reads as missing so record existence never leaks
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return detail, nil
}

func (s *StudentService) resolveSubject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

func (s *StudentService) recordMutation(ctx context.Context, principal models.Principal, action, description string) error {
	userID := principal.UserID
	if err := s.activity.Record(ctx, &userID, action, description, principal.IP, principal.UserAgent); err != nil {
		return err
	}
	return nil
}

func (s *StudentService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
