package service

import (
	"context"
	"fmt"
	"time"

	"fitconnect-backend/internal/auth/password"
	"fitconnect-backend/internal/auth/repository"
	"fitconnect-backend/internal/events"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/config"
	"fitconnect-backend/platform/logger"
	"fitconnect-backend/platform/phone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, displayName string, phone *string, role string) (repository.User, error)
	GetUserByEmail(ctx context.Context, email string) (repository.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (repository.User, error)
}

// ProfessionalProfileInput carries the profile fields collected at
// professional sign-up.
type ProfessionalProfileInput struct {
	Profession        string
	YearsOfExperience int
	Qualifications    string
	AboutYou          string
	SocialLinks       map[string]string
}

// ProfileCreator creates the professional profile that accompanies a
// PROFESSIONAL user. Implemented by the professionals context.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, input ProfessionalProfileInput) error
}

type Service struct {
	store    UserStore
	profiles ProfileCreator
	cfg      config.AuthServiceConfig
	bus      events.Bus
	log      *logger.Logger
}

func New(store UserStore, profiles ProfileCreator, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, profiles: profiles, cfg: cfg, bus: bus, log: log}
}

// RegisterClient creates a CLIENT account.
func (s *Service) RegisterClient(ctx context.Context, email, plainPassword, displayName, rawPhone string) (repository.User, error) {
	return s.register(ctx, email, plainPassword, displayName, rawPhone, repository.RoleClient)
}

// RegisterProfessional creates a PROFESSIONAL account together with its
// profile. The profile starts in PENDING_VERIFICATION; a registered event is
// published so the screening pipeline picks it up.
func (s *Service) RegisterProfessional(ctx context.Context, email, plainPassword, displayName, rawPhone string, profile ProfessionalProfileInput) (repository.User, error) {
	user, err := s.register(ctx, email, plainPassword, displayName, rawPhone, repository.RoleProfessional)
	if err != nil {
		return repository.User{}, err
	}

	if err := s.profiles.CreateProfile(ctx, user.ID, profile); err != nil {
		return repository.User{}, fmt.Errorf("create professional profile: %w", err)
	}

	s.bus.Publish(ctx, events.ProfessionalRegistered{
		BaseEvent:      events.NewBaseEvent(),
		ProfessionalID: user.ID.String(),
		Email:          user.Email,
	})
	s.log.AuthEvent("register_professional", user.Email, true, "")
	return user, nil
}

func (s *Service) register(ctx context.Context, email, plainPassword, displayName, rawPhone, role string) (repository.User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.User{}, fmt.Errorf("hash password: %w", err)
	}

	var phonePtr *string
	if rawPhone != "" {
		normalized := phone.NormalizeE164(rawPhone)
		phonePtr = &normalized
	}

	user, err := s.store.CreateUser(ctx, email, hash, displayName, phonePtr, role)
	if err != nil {
		return repository.User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, repository.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", repository.User{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "password mismatch")
		return "", repository.User{}, apperr.Unauthorized("invalid credentials")
	}

	accessToken, err := s.signAccessToken(user.ID, []string{user.Role})
	if err != nil {
		return "", repository.User{}, fmt.Errorf("sign access token: %w", err)
	}

	s.log.AuthEvent("login", email, true, "")
	return accessToken, user, nil
}

// GetMe returns the account behind the given user id.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *Service) signAccessToken(userID uuid.UUID, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"roles": roles,
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
