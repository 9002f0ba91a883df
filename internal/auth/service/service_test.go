package service

import (
	"context"
	"testing"
	"time"

	"fitconnect-backend/internal/auth/password"
	"fitconnect-backend/internal/auth/repository"
	"fitconnect-backend/internal/events"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeStore struct {
	usersByEmail map[string]repository.User
	usersByID    map[uuid.UUID]repository.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		usersByEmail: make(map[string]repository.User),
		usersByID:    make(map[uuid.UUID]repository.User),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, email, passwordHash, displayName string, phone *string, role string) (repository.User, error) {
	if _, exists := f.usersByEmail[email]; exists {
		return repository.User{}, apperr.Conflict("email already registered")
	}
	user := repository.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Phone:        phone,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.usersByEmail[email] = user
	f.usersByID[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, userID uuid.UUID) (repository.User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

type fakeProfiles struct {
	created []uuid.UUID
}

func (f *fakeProfiles) CreateProfile(_ context.Context, userID uuid.UUID, _ ProfessionalProfileInput) error {
	f.created = append(f.created, userID)
	return nil
}

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }

func newTestService(store *fakeStore, profiles *fakeProfiles) *Service {
	log := logger.New("test")
	return New(store, profiles, testConfig{}, events.NewInMemoryBus(log), log)
}

func TestRegisterClient(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProfiles{})

	user, err := svc.RegisterClient(context.Background(), "client@example.com", "hunter2pass", "Alice", "")
	if err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}
	if user.Role != repository.RoleClient {
		t.Errorf("role = %s, want CLIENT", user.Role)
	}
	if err := password.Compare(user.PasswordHash, "hunter2pass"); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterClientDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProfiles{})

	ctx := context.Background()
	if _, err := svc.RegisterClient(ctx, "dup@example.com", "hunter2pass", "Alice", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.RegisterClient(ctx, "dup@example.com", "hunter2pass", "Bob", "")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("duplicate email: got %v, want Conflict", err)
	}
}

func TestRegisterProfessionalCreatesProfile(t *testing.T) {
	store := newFakeStore()
	profiles := &fakeProfiles{}
	svc := newTestService(store, profiles)

	user, err := svc.RegisterProfessional(context.Background(), "pro@example.com", "hunter2pass", "Bob", "", ProfessionalProfileInput{
		Profession:        "Electrician",
		YearsOfExperience: 7,
	})
	if err != nil {
		t.Fatalf("RegisterProfessional: %v", err)
	}
	if user.Role != repository.RoleProfessional {
		t.Errorf("role = %s, want PROFESSIONAL", user.Role)
	}
	if len(profiles.created) != 1 || profiles.created[0] != user.ID {
		t.Errorf("profile not created for user %s", user.ID)
	}
}

func TestLoginIssuesAccessToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProfiles{})

	ctx := context.Background()
	user, err := svc.RegisterClient(ctx, "login@example.com", "hunter2pass", "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tokenString, got, err := svc.Login(ctx, "login@example.com", "hunter2pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user id = %s, want %s", got.ID, user.ID)
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProfiles{})

	ctx := context.Background()
	if _, err := svc.RegisterClient(ctx, "wrong@example.com", "hunter2pass", "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(ctx, "wrong@example.com", "not-the-password")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("wrong password: got %v, want Unauthorized", err)
	}

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever1")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("unknown email: got %v, want Unauthorized", err)
	}
}
