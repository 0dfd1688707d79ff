package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"checkin/infras/otel"
	"checkin/internal/domains/dashboard/service"
	"checkin/shared/authz"
	"checkin/shared/constant"
	"checkin/transport/http/response"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/platform", handler.GetPlatformStats)
		routerGroup.Get("/hotel", handler.GetHotelStats)
	})
}

// GetPlatformStats returns aggregate statistics across all hotels.
// @Summary Get platform statistics
// @Description Retrieve total hotels, total guests and recent registrations across the platform.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.PlatformStatsResponse] "Platform statistics"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/platform [get]
// @Security BearerAuth
func (handler *Handler) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlatformStats")
	defer scope.End()

	res, err := handler.service.PlatformStats(ctx, authz.FromRequestContext(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get platform stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Platform stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetHotelStats returns today's check-ins and check-outs for a hotel.
// @Summary Get hotel statistics
// @Description Retrieve guest totals and today's check-ins and check-outs. Hotel operators see their own hotel; platform operators pass hotel_id.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param hotel_id query string false "Hotel ID (required for platform operators)"
// @Success 200 {object} response.Data[dto.HotelStatsResponse] "Hotel statistics"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/hotel [get]
// @Security BearerAuth
func (handler *Handler) GetHotelStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelStats")
	defer scope.End()

	hotelID := r.URL.Query().Get("hotel_id")

	res, err := handler.service.HotelStats(ctx, authz.FromRequestContext(ctx), hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
