package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"checkin/infras/otel"
	"checkin/internal/domains/user/model/dto"
	"checkin/internal/domains/user/service"
	"checkin/shared/authz"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	"checkin/shared/validator"
	"checkin/transport/http/response"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOperator)
		routerGroup.Get("/", handler.GetOperators)
	})
}

// CreateOperator registers a new operator account.
// @Summary Create an operator account
// @Description Create a platform or hotel operator account. Hotel operators must be bound to an existing hotel.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateOperatorRequest true "Create Operator Request"
// @Success 201 {object} response.Data[dto.UserResponse] "Operator created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOperator")
	defer scope.End()

	req := dto.CreateOperatorRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, authz.FromRequestContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create operator")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Operator created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetOperators retrieves operator accounts.
// @Summary Get operator accounts
// @Description Retrieve operator accounts with pagination.
// @Tags User
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of operators"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetOperators(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOperators")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	users, err := handler.service.GetAll(ctx, authz.FromRequestContext(ctx), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get operators")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Operators retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}
