package newsletter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"beacon/infras/otel"
	"beacon/internal/domains/newsletter/model"
	"beacon/internal/domains/newsletter/model/dto"
	"beacon/internal/domains/newsletter/service"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
	"beacon/shared/validator"
	"beacon/transport/http/response"
)

type Handler struct {
	service service.Newsletter
	otel    otel.Otel
}

func New(service service.Newsletter, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/newsletter", func(routerGroup chi.Router) {
		routerGroup.Post("/subscribe", handler.Subscribe)
		routerGroup.Post("/unsubscribe", handler.Unsubscribe)
		routerGroup.Get("/subscribers", handler.GetSubscribers)
	})
}

// Subscribe adds an address to the newsletter list.
// @Summary Subscribe to the newsletter
// @Description Subscribe an email address. Resubscribing an active address is a no-op.
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Subscribe Request"
// @Success 201 {object} response.Data[dto.SubscriberResponse] "Subscribed"
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/newsletter/subscribe [post]
func (handler *Handler) Subscribe(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Subscribe")
	defer scope.End()

	req := dto.SubscribeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Subscribe(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to subscribe")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Newsletter subscription stored: " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// Unsubscribe removes an address from the newsletter list.
// @Summary Unsubscribe from the newsletter
// @Description Mark an email address as unsubscribed.
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Unsubscribe Request"
// @Success 200 {object} response.Message "Unsubscribed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/newsletter/unsubscribe [post]
func (handler *Handler) Unsubscribe(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Unsubscribe")
	defer scope.End()

	req := dto.SubscribeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	req.Normalize()

	if err := handler.service.Unsubscribe(ctx, req.Email); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unsubscribe")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Newsletter subscription removed for " + req.Email)

	response.WithMessage(writer, http.StatusOK, "Unsubscribed successfully")
}

// GetSubscribers retrieves all newsletter subscribers.
// @Summary Get all subscribers
// @Description Retrieve all newsletter subscribers with optional filtering and pagination.
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (subscribed, unsubscribed)"
// @Success 200 {object} response.Data[dto.GetSubscribersResponse] "List of subscribers"
// @Failure 500 {object} response.Error
// @Router /v1/newsletter/subscribers [get]
// @Security BearerAuth
func (handler *Handler) GetSubscribers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSubscribers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	subscribers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get subscribers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Subscribers retrieved successfully")

	response.WithJSON(w, http.StatusOK, subscribers)
}
