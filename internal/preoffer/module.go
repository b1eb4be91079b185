// Package preoffer provides the moving pre-offer bounded context module.
// This file defines the module that encapsulates all pre-offer setup and route registration.
package preoffer

import (
	apphttp "moving_quote_backend/internal/http"
	"moving_quote_backend/internal/preoffer/handler"
	"moving_quote_backend/internal/preoffer/repository"
	"moving_quote_backend/internal/preoffer/service"
	"moving_quote_backend/internal/rate"
	"moving_quote_backend/internal/scheduler"
	"moving_quote_backend/platform/logger"
	"moving_quote_backend/platform/validator"
)

// Module is the pre-offer bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the pre-offer module with all its dependencies.
func NewModule(repo repository.Repository, rates rate.Client, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, rates, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "preoffer"
}

// Service returns the pre-offer service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetOfferNotifier injects the follow-up hand-off (breaks the scheduler dependency at startup).
func (m *Module) SetOfferNotifier(n scheduler.OfferNotifier) {
	m.service.SetOfferNotifier(n)
}

// RegisterRoutes mounts pre-offer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/pre-offers"), ctx.SubmitRateLimit)
	m.handler.RegisterDistanceRoutes(ctx.V1.Group("/distance"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
