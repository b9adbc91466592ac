package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventplanner/internal/shared/config"
	"eventplanner/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*users.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[uuid.UUID]*users.User{}}
}

func (m *memoryRepo) CreateUser(_ context.Context, user *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.Email = normalizeEmail(user.Email)
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryRepo) GetUserByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == normalizeEmail(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memoryRepo) GetUserByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func newTestService(repo Repository) *service {
	cfg := &config.Config{JWT: config.JWTConfig{
		Secret:           "test-secret",
		JWTExpiresIn:     15 * time.Minute,
		RefreshExpiresIn: time.Hour,
	}}
	return NewService(repo, cfg).(*service)
}

func TestRegister_RoleHandling(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	tests := []struct {
		requested string
		want      users.Role
	}{
		{"", users.RoleCustomer},
		{"vendor", users.RoleVendor},
		{"Manager", users.RoleManager},
		{"admin", users.RoleCustomer},
		{"superuser", users.RoleCustomer},
	}

	for i, tt := range tests {
		resp, err := svc.Register(ctx, &RegisterRequest{
			FirstName: "Test",
			LastName:  "User",
			Email:     "user" + string(rune('a'+i)) + "@example.com",
			Password:  "secret123",
			Role:      tt.requested,
		})
		require.NoError(t, err)
		assert.Equal(t, string(tt.want), resp.User.Role, "requested %q", tt.requested)
		assert.NotEmpty(t, resp.AccessToken)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	req := &RegisterRequest{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Email = "ANN@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{FirstName: "Bo", LastName: "Ng", Email: "bo@example.com", Password: "secret123", Role: "vendor"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "bo@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(ctx, &LoginRequest{Email: "bo@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.validateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "vendor", claims.Role)
	assert.Equal(t, tokenTypeAccess, claims.Type)

	repo.users[uuid.MustParse(reg.User.ID)].IsActive = false
	_, err = svc.Login(ctx, &LoginRequest{Email: "bo@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{FirstName: "Cy", LastName: "Ro", Email: "cy@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, reg.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{FirstName: "Di", LastName: "Xu", Email: "di@example.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, uuid.MustParse(reg.User.ID), &ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, uuid.MustParse(reg.User.ID), &ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.Login(ctx, &LoginRequest{Email: "di@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}
