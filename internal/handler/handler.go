// Package handler exposes the hospital directory over HTTP.
package handler

import (
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/service"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/storage"
)

// Handler holds the domain dependencies for all HTTP handlers.
// A single Handler is shared across all route groups; individual methods are
// registered as gin handler functions.
type Handler struct {
	engine     *query.Engine
	directions *service.DirectionsService
	repo       storage.HospitalsRepository
}

// New creates a Handler with the given dependencies.
func New(
	engine *query.Engine,
	directions *service.DirectionsService,
	repo storage.HospitalsRepository,
) *Handler {
	return &Handler{
		engine:     engine,
		directions: directions,
		repo:       repo,
	}
}
