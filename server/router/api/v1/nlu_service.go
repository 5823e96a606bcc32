package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moaworks/moa-router/plugin/nlu/dialogact"
	"github.com/moaworks/moa-router/plugin/nlu/router"
	"github.com/moaworks/moa-router/plugin/nlu/strategy"
	"github.com/moaworks/moa-router/plugin/nlu/timeout"
	"github.com/moaworks/moa-router/server/internal/observability"
)

// RouteRequest is the body of POST /api/v1/route.
type RouteRequest struct {
	Message       string `json:"message"`
	HasAttachment bool   `json:"has_attachment"`
}

// RouteResponse bundles everything the chat frontend needs to dispatch one
// message: the delivery decision, the dialog act and the response strategy.
type RouteResponse struct {
	RequestID string                   `json:"request_id"`
	DialogAct dialogact.DialogAct      `json:"dialog_act"`
	Decision  *router.WeightedDecision `json:"decision"`
	Strategy  strategy.Strategy        `json:"strategy"`
}

// DecideRoute classifies one utterance and returns the routing plan.
func (s *APIV1Service) DecideRoute(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	reqCtx := observability.NewRequestContext(slog.Default())
	ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)

	meta := &router.Meta{
		HasAttachment: req.HasAttachment,
		Length:        len([]rune(req.Message)),
	}

	decision := s.Router.Decide(ctx, req.Message, meta)
	act := s.Classifier.Classify(req.Message)
	strat := strategy.Select(act, &decision.RouteDecision)

	reqCtx.Info("route request served",
		slog.String(observability.LogFieldRoute, string(decision.Route)),
		slog.String("dialog_act", string(act)),
		slog.Int(observability.LogFieldMessageLen, meta.Length),
		slog.String("message", timeout.Truncate(req.Message)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)

	return c.JSON(http.StatusOK, &RouteResponse{
		RequestID: reqCtx.RequestID,
		DialogAct: act,
		Decision:  decision,
		Strategy:  strat,
	})
}
