package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/findamedi/clinics-api/internal/config"
	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T, password string) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.User{
		Email:        "admin@findamedi.com",
		Name:         "Admin",
		PasswordHash: string(hash),
		Role:         "ADMIN",
	}
	admin.ID = uuid.New()

	repo := &fakeUserRepo{users: map[string]*model.User{admin.Email: admin}}
	return NewService(repo, config.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
}

func TestLoginAndValidateToken(t *testing.T) {
	svc := newTestService(t, "admin123")

	token, err := svc.Login(context.Background(), "admin@findamedi.com", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@findamedi.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, "admin123")

	_, err := svc.Login(context.Background(), "admin@findamedi.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t, "admin123")

	_, err := svc.Login(context.Background(), "nobody@findamedi.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(t, "admin123")
	token, err := svc.Login(context.Background(), "admin@findamedi.com", "admin123")
	require.NoError(t, err)

	other := NewService(&fakeUserRepo{}, config.JWTConfig{Secret: "different-secret", ExpiryHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService(t, "admin123")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
