// Package requests provides the service request lifecycle bounded context
// module: requests, matching orchestration, and appointments.
package requests

import (
	"fitconnect-backend/internal/events"
	apphttp "fitconnect-backend/internal/http"
	"fitconnect-backend/internal/requests/handler"
	"fitconnect-backend/internal/requests/ports"
	"fitconnect-backend/internal/requests/repository"
	"fitconnect-backend/internal/requests/service"
	"fitconnect-backend/platform/httpkit"
	"fitconnect-backend/platform/logger"
	"fitconnect-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the requests bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Deps are the cross-context ports the module consumes.
type Deps struct {
	Matcher       ports.MatchFinder
	Professionals ports.ProfessionalDirectory
	Users         ports.UserDirectory
}

func NewModule(pool *pgxpool.Pool, deps Deps, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, deps.Matcher, deps.Professionals, deps.Users, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "requests"
}

// Service exposes the requests service for cross-module use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts request and appointment routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sr := ctx.Protected.Group("/service-requests")
	sr.POST("", httpkit.RequireRole("CLIENT"), m.handler.Create)
	sr.GET("", httpkit.RequireRole("CLIENT"), m.handler.ListMine)
	sr.GET("/open", httpkit.RequireRole("PROFESSIONAL"), m.handler.ListOpen)
	sr.GET("/:id", m.handler.Get)
	sr.POST("/:id/matches", httpkit.RequireRole("CLIENT"), m.handler.RequestMatches)
	sr.POST("/:id/select-professional", httpkit.RequireRole("CLIENT"), m.handler.SelectProfessional)
	sr.POST("/:id/cancel", httpkit.RequireRole("CLIENT"), m.handler.Cancel)

	ap := ctx.Protected.Group("/appointments")
	ap.GET("/as-client", httpkit.RequireRole("CLIENT"), m.handler.ListAppointmentsAsClient)
	ap.GET("/as-professional", httpkit.RequireRole("PROFESSIONAL"), m.handler.ListAppointmentsAsProfessional)
	ap.POST("/:id/accept", httpkit.RequireRole("PROFESSIONAL"), m.handler.Accept)
	ap.POST("/:id/decline", httpkit.RequireRole("PROFESSIONAL"), m.handler.Decline)
	ap.POST("/:id/confirm", httpkit.RequireRole("CLIENT"), m.handler.Confirm)
	ap.POST("/:id/complete", httpkit.RequireRole("CLIENT"), m.handler.Complete)
	ap.POST("/:id/cancel", m.handler.CancelAppointment)
}

var _ apphttp.Module = (*Module)(nil)
