package guest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"checkin/infras/otel"
	"checkin/internal/domains/guest/model/dto"
	"checkin/internal/domains/guest/service"
	"checkin/shared/authz"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	"checkin/shared/validator"
	"checkin/transport/http/response"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guest/form", func(routerGroup chi.Router) {
		routerGroup.Post("/{hotelId}", handler.RegisterGuest)
	})

	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Patch("/{id}", handler.UpdateGuest)
	})
}

// RegisterGuest handles a public guest registration submitted from the QR
// deep link. Rejected submissions are echoed back so the form can be
// re-rendered pre-filled.
// @Summary Register a guest
// @Description Submit a guest registration for a hotel. No authentication required.
// @Tags Guest
// @Accept json
// @Produce json
// @Param hotelId path string true "Hotel ID"
// @Param request body dto.RegisterGuestRequest true "Guest Registration Request"
// @Success 201 {object} response.Data[dto.RegisterGuestResponse] "Guest registered successfully"
// @Failure 400 {object} response.FormError
// @Failure 404 {object} response.FormError
// @Failure 409 {object} response.FormError
// @Failure 500 {object} response.FormError
// @Router /v1/guest/form/{hotelId} [post]
func (handler *Handler) RegisterGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterGuest")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	req := dto.RegisterGuestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate registration form")

		response.WithFormError(w, err, req)

		return
	}

	res, err := handler.service.Register(ctx, hotelID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register guest")

		response.WithFormError(w, err, req)

		return
	}

	scope.AddEvent("Guest registered successfully for hotel " + hotelID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetGuests retrieves guest registrations. Hotel operators are scoped to
// their own hotel.
// @Summary Get guests
// @Description Retrieve guest registrations with pagination. Platform operators may filter by hotel.
// @Tags Guest
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel ID"
// @Success 200 {object} response.Data[dto.GetGuestsResponse] "List of guests"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	hotelID := r.URL.Query().Get("hotel_id")

	guests, err := handler.service.GetAll(ctx, authz.FromRequestContext(ctx), hotelID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guests retrieved successfully")

	response.WithJSON(w, http.StatusOK, guests)
}

// GetGuestByID retrieves a guest registration by its ID.
// @Summary Get a guest by ID
// @Description Retrieve a guest registration by its unique identifier.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	guest, err := handler.service.Get(ctx, authz.FromRequestContext(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest retrieved successfully")

	response.WithJSON(w, http.StatusOK, guest)
}

// UpdateGuest updates a guest registration. Changed stay dates are
// re-validated against the hotel's existing bookings.
// @Summary Update a guest by ID
// @Description Update a guest registration. Stay date changes are checked for conflicts.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Update Guest Request"
// @Success 200 {object} response.Message "Guest updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateGuestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, authz.FromRequestContext(ctx), req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Guest updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Guest updated successfully")
}
