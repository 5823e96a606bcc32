// Package v1 exposes the routing and catalog endpoints over HTTP.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/moaworks/moa-router/internal/profile"
	"github.com/moaworks/moa-router/plugin/nlu/dialogact"
	"github.com/moaworks/moa-router/plugin/nlu/intent"
	"github.com/moaworks/moa-router/plugin/nlu/router"
	"github.com/moaworks/moa-router/server/ai"
	"github.com/moaworks/moa-router/server/service/toolsearch"
	"github.com/moaworks/moa-router/store"
)

// APIV1Service holds the collaborators behind the /api/v1 surface.
type APIV1Service struct {
	Profile    *profile.Profile
	Store      *store.Store
	Classifier *dialogact.Classifier
	Analyzer   *intent.Analyzer
	Router     router.RouterService
	Search     *toolsearch.Service

	// Embedder is optional; without it the embed endpoint reports that AI
	// is disabled.
	Embedder *ai.Embedder
}

// NewAPIV1Service creates the v1 API service.
func NewAPIV1Service(
	profile *profile.Profile,
	st *store.Store,
	routerService router.RouterService,
	search *toolsearch.Service,
	embedder *ai.Embedder,
) *APIV1Service {
	return &APIV1Service{
		Profile:    profile,
		Store:      st,
		Classifier: dialogact.NewClassifier(),
		Analyzer:   intent.NewAnalyzer(nil),
		Router:     routerService,
		Search:     search,
		Embedder:   embedder,
	}
}

// RegisterRoutes mounts all v1 endpoints.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/route", s.DecideRoute)
	g.GET("/tools/search", s.SearchTools)
	g.GET("/tools/semantic", s.SemanticSearchTools)
	g.POST("/tools", s.CreateTool)
	g.DELETE("/tools/:id", s.DeleteTool)
	g.POST("/tools/embed", s.EmbedCatalog)
}
