package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"beacon/infras/otel"
	"beacon/internal/domains/stats/service"
	"beacon/shared/constant"
	"beacon/transport/http/response"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stats", func(routerGroup chi.Router) {
		routerGroup.Get("/dashboard", handler.GetDashboardStats)
	})
}

// GetDashboardStats returns the admin dashboard counters.
// @Summary Get dashboard stats
// @Description Retrieve aggregated counters for the admin dashboard.
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardStatsResponse] "Dashboard counters"
// @Failure 500 {object} response.Error
// @Router /v1/stats/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboardStats")
	defer scope.End()

	stats, err := handler.service.Dashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}
