package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

type mockUserRepo struct {
	usersByEmail map[string]*models.User
	lastLogin    map[string]time.Time
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.usersByEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if m.lastLogin == nil {
		m.lastLogin = make(map[string]time.Time)
	}
	m.lastLogin[id] = ts
	return nil
}

type mockActivityStore struct {
	entries []models.ActivityLog
	err     error
}

func (m *mockActivityStore) Create(ctx context.Context, entry *models.ActivityLog) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityStore) List(ctx context.Context) ([]models.ActivityLog, error) {
	return m.entries, nil
}

func newAuthServiceForTest(repo *mockUserRepo, store *mockActivityStore) *AuthService {
	activity := NewActivityService(store, nil)
	return NewAuthService(repo, activity, nil, nil, AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "srs-test",
	})
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Email:        "teacher@example.com",
		PasswordHash: string(hash),
		FullName:     "Pat Teacher",
		Roles:        pq.StringArray{"TEACHER"},
		Active:       true,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &mockUserRepo{usersByEmail: map[string]*models.User{
		"teacher@example.com": testUser(t, "secret123"),
	}}
	store := &mockActivityStore{}
	svc := newAuthServiceForTest(repo, store)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, []models.Role{models.RoleTeacher}, resp.User.Roles)
	assert.Contains(t, repo.lastLogin, "u1")

	require.Len(t, store.entries, 1)
	assert.Equal(t, models.ActionLogin, store.entries[0].Action)
	assert.Equal(t, "User logged in", store.entries[0].Description)
	require.NotNil(t, store.entries[0].UserID)
	assert.Equal(t, "u1", *store.entries[0].UserID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, []models.Role{models.RoleTeacher}, claims.Roles)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{usersByEmail: map[string]*models.User{
		"teacher@example.com": testUser(t, "secret123"),
	}}
	store := &mockActivityStore{}
	svc := newAuthServiceForTest(repo, store)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	require.Len(t, store.entries, 1)
	assert.Equal(t, models.ActionFailedLogin, store.entries[0].Action)
	assert.Equal(t, "Failed login attempt for teacher@example.com", store.entries[0].Description)
	assert.Nil(t, store.entries[0].UserID)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{usersByEmail: map[string]*models.User{}}
	store := &mockActivityStore{}
	svc := newAuthServiceForTest(repo, store)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	require.Len(t, store.entries, 1)
	assert.Equal(t, models.ActionFailedLogin, store.entries[0].Action)
	assert.Nil(t, store.entries[0].UserID)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := testUser(t, "secret123")
	user.Active = false
	repo := &mockUserRepo{usersByEmail: map[string]*models.User{user.Email: user}}
	store := &mockActivityStore{}
	svc := newAuthServiceForTest(repo, store)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
	require.Len(t, store.entries, 1)
	assert.Equal(t, models.ActionFailedLogin, store.entries[0].Action)
}

func TestAuthServiceLoginAuditOutageDoesNotBlock(t *testing.T) {
	repo := &mockUserRepo{usersByEmail: map[string]*models.User{
		"teacher@example.com": testUser(t, "secret123"),
	}}
	store := &mockActivityStore{err: assert.AnError}
	svc := newAuthServiceForTest(repo, store)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthServiceLogout(t *testing.T) {
	store := &mockActivityStore{}
	svc := newAuthServiceForTest(&mockUserRepo{}, store)

	svc.Logout(context.Background(), models.Principal{UserID: "u1"})

	require.Len(t, store.entries, 1)
	assert.Equal(t, models.ActionLogout, store.entries[0].Action)
	assert.Equal(t, "User logged out", store.entries[0].Description)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthServiceForTest(&mockUserRepo{}, &mockActivityStore{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
