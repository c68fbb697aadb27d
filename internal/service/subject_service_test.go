package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

type mockSubjectRepo struct {
	subjects []models.Subject
	deleted  []string
}

func (m *mockSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	return m.subjects, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	for _, s := range m.subjects {
		if s.ID == id {
			subject := s
			return &subject, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = "generated"
	}
	m.subjects = append(m.subjects, *subject)
	return nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	kept := m.subjects[:0]
	for _, s := range m.subjects {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.subjects = kept
	return nil
}

type mockCacheStore struct {
	values map[string][]byte
}

func (m *mockCacheStore) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *mockCacheStore) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			delete(m.values, key)
		}
	}
	return nil
}

func TestSubjectServiceCreate(t *testing.T) {
	repo := &mockSubjectRepo{}
	svc := NewSubjectService(repo, nil, nil, nil)

	subject, err := svc.Create(context.Background(), CreateSubjectRequest{Name: "Math"})
	require.NoError(t, err)
	assert.NotEmpty(t, subject.ID)
	assert.Len(t, repo.subjects, 1)
}

func TestSubjectServiceCreateDuplicateNameAllowed(t *testing.T) {
	repo := &mockSubjectRepo{subjects: []models.Subject{{ID: "s1", Name: "Math"}}}
	svc := NewSubjectService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateSubjectRequest{Name: "Math"})
	require.NoError(t, err)
	assert.Len(t, repo.subjects, 2)
}

func TestSubjectServiceCreateRefreshesDashboard(t *testing.T) {
	repo := &mockSubjectRepo{subjects: []models.Subject{{ID: "math", Name: "Math"}}}
	cache := NewCacheService(&mockCacheStore{}, nil, time.Minute, nil, true)
	reports := NewReportService(&mockAllStudentLister{}, repo, cache, nil)
	subjects := NewSubjectService(repo, cache, nil, nil)

	stats, cached, err := reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, stats.SubjectAverages, 1)

	_, cached, err = reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)

	_, err = subjects.Create(context.Background(), CreateSubjectRequest{Name: "Physics"})
	require.NoError(t, err)

	stats, cached, err = reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, stats.SubjectAverages, 2)
	assert.Equal(t, "Physics", stats.SubjectAverages[1].SubjectName)
	assert.Equal(t, 0, stats.SubjectAverages[1].StudentCount)
	assert.Nil(t, stats.SubjectAverages[1].AvgMarks)
}

func TestSubjectServiceDeleteRefreshesDashboard(t *testing.T) {
	repo := &mockSubjectRepo{subjects: []models.Subject{{ID: "math", Name: "Math"}}}
	store := &mockCacheStore{}
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	svc := NewSubjectService(repo, cache, nil, nil)

	require.NoError(t, cache.Set(context.Background(), "dash:summary", 1, time.Minute))
	require.NoError(t, svc.Delete(context.Background(), "math"))

	assert.NotContains(t, store.values, "dash:summary")
	assert.Contains(t, repo.deleted, "math")
}

func TestSubjectServiceDeleteMissing(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
