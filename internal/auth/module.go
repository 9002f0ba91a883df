// Package auth provides the authentication bounded context module.
package auth

import (
	"fitconnect-backend/internal/auth/handler"
	"fitconnect-backend/internal/auth/repository"
	"fitconnect-backend/internal/auth/service"
	"fitconnect-backend/internal/events"
	apphttp "fitconnect-backend/internal/http"
	"fitconnect-backend/platform/config"
	"fitconnect-backend/platform/logger"
	"fitconnect-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule wires the auth module. The profiles port is implemented by the
// professionals context via internal/adapters.
func NewModule(pool *pgxpool.Pool, profiles service.ProfileCreator, cfg config.AuthServiceConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, profiles, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

func (m *Module) Name() string {
	return "auth"
}

// Service exposes the auth service for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the user store for cross-module adapters.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/auth/me", m.handler.GetMe)
}

var _ apphttp.Module = (*Module)(nil)
