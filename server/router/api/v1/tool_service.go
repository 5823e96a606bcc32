package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moaworks/moa-router/store"
)

// CreateToolRequest is the body of POST /api/v1/tools.
type CreateToolRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	HasAPI      bool     `json:"has_api"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	ServiceID   string   `json:"service_id"`
}

// CreateTool inserts a catalog entry.
func (s *APIV1Service) CreateTool(c echo.Context) error {
	var req CreateToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Price == "" {
		req.Price = "free"
	}
	if req.Features == nil {
		req.Features = []string{}
	}

	tool, err := s.Store.CreateAITool(c.Request().Context(), &store.AITool{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		HasAPI:      req.HasAPI,
		Features:    req.Features,
		Description: req.Description,
		Rating:      req.Rating,
		ServiceID:   req.ServiceID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create tool").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, tool)
}

// DeleteTool removes a catalog entry.
func (s *APIV1Service) DeleteTool(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tool id")
	}
	if err := s.Store.DeleteAITool(c.Request().Context(), int32(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete tool").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchTools answers GET /api/v1/tools/search?q=...&limit=N with ranked
// catalog entries.
func (s *APIV1Service) SearchTools(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	result, err := s.Search.Search(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "tool search failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, result)
}

// SemanticSearchTools answers GET /api/v1/tools/semantic?q=... with vector
// search results. Unavailable on sqlite or without an embedding client.
func (s *APIV1Service) SemanticSearchTools(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	hits, err := s.Search.Semantic(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "semantic search unavailable").SetInternal(err)
	}
	return c.JSON(http.StatusOK, hits)
}

// EmbedCatalog embeds every tool missing an embedding.
func (s *APIV1Service) EmbedCatalog(c echo.Context) error {
	if s.Embedder == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI is disabled")
	}

	count, err := s.Embedder.EmbedMissing(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "catalog embedding failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"embedded": count})
}
