// Package professionals provides the professional profile and verification
// bounded context module.
package professionals

import (
	"fitconnect-backend/internal/events"
	apphttp "fitconnect-backend/internal/http"
	"fitconnect-backend/internal/professionals/handler"
	"fitconnect-backend/internal/professionals/ports"
	"fitconnect-backend/internal/professionals/repository"
	"fitconnect-backend/internal/professionals/service"
	"fitconnect-backend/platform/httpkit"
	"fitconnect-backend/platform/logger"
	"fitconnect-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the professionals bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Deps are the capability and infrastructure ports the module consumes.
type Deps struct {
	Summarizer ports.Summarizer
	Extractor  ports.SkillExtractor
	Storage    ports.ObjectStorage
	Enqueuer   ports.ScreeningEnqueuer
}

func NewModule(pool *pgxpool.Pool, deps Deps, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, deps.Summarizer, deps.Extractor, deps.Storage, bus, log)
	h := handler.New(svc, deps.Enqueuer, val)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "professionals"
}

// Service exposes the professionals service for cross-module adapters and
// the worker entrypoint.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts professional routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public profile view; no auth needed.
	ctx.V1.GET("/professionals/:id", m.handler.GetPublicProfile)

	me := ctx.Protected.Group("/professionals/me")
	me.Use(httpkit.RequireRole("PROFESSIONAL"))
	me.GET("/profile", m.handler.GetOwnProfile)
	me.PUT("/profile", m.handler.UpdateOwnProfile)
	me.POST("/documents", m.handler.RequestDocumentUpload)
	me.GET("/documents", m.handler.ListOwnDocuments)
	me.GET("/documents/:docId/download", m.handler.GetDocumentDownloadURL)
	me.POST("/documents/:docId/text", m.handler.AttachDocumentText)
	me.POST("/screening", m.handler.TriggerScreening)

	ctx.Admin.GET("/professionals/pending", m.handler.ListPending)
	ctx.Admin.GET("/professionals/:id/documents", m.handler.ListDocumentsForReview)
	ctx.Admin.PUT("/professionals/:id/verification-status", m.handler.SetVerificationStatus)
	ctx.Admin.POST("/professionals/:id/screen", m.handler.ScreenNow)
}

var _ apphttp.Module = (*Module)(nil)
