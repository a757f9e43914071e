package demorequest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"beacon/infras/otel"
	"beacon/internal/domains/demorequest/model"
	"beacon/internal/domains/demorequest/model/dto"
	"beacon/internal/domains/demorequest/service"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
	"beacon/shared/validator"
	"beacon/transport/http/response"
)

type Handler struct {
	service service.DemoRequest
	otel    otel.Otel
}

func New(service service.DemoRequest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/demo-requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitDemoRequest)
		routerGroup.Get("/", handler.GetDemoRequests)
		routerGroup.Get("/{id}", handler.GetDemoRequestByID)
		routerGroup.Patch("/{id}", handler.UpdateDemoRequest)
	})
}

// SubmitDemoRequest books a demo from a submitted form.
// @Summary Submit a demo request
// @Description Validate the form, store the request, create the calendar event and send the confirmation emails.
// @Tags DemoRequest
// @Accept json
// @Produce json
// @Param request body dto.SubmitDemoRequestRequest true "Submit Demo Request"
// @Success 201 {object} response.Data[dto.SubmitDemoRequestResponse] "Demo request scheduled"
// @Failure 422 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/demo-requests [post]
func (handler *Handler) SubmitDemoRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitDemoRequest")
	defer scope.End()

	req := dto.SubmitDemoRequestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit demo request")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Demo request scheduled: " + res.Request.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetDemoRequests retrieves all demo requests based on query parameters.
// @Summary Get all demo requests
// @Description Retrieve all demo requests with optional filtering and pagination.
// @Tags DemoRequest
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, scheduled, completed, cancelled)"
// @Param email query string false "Filter by requester email"
// @Success 200 {object} response.Data[dto.GetDemoRequestsResponse] "List of demo requests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/demo-requests [get]
// @Security BearerAuth
func (handler *Handler) GetDemoRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDemoRequests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	email := r.URL.Query().Get(model.FieldEmail)

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

	if email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	requests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get demo requests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Demo requests retrieved successfully")

	response.WithJSON(w, http.StatusOK, requests)
}

// GetDemoRequestByID retrieves a demo request by its ID.
// @Summary Get a demo request by ID
// @Description Retrieve a demo request by its unique identifier.
// @Tags DemoRequest
// @Accept json
// @Produce json
// @Param id path string true "Demo Request ID"
// @Success 200 {object} response.Data[dto.DemoRequestResponse] "Demo request details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/demo-requests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDemoRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDemoRequestByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	request, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get demo request by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Demo request retrieved successfully")

	response.WithJSON(w, http.StatusOK, request)
}

// UpdateDemoRequest updates an existing demo request by its ID.
// @Summary Update a demo request by ID
// @Description Update the status of an existing demo request.
// @Tags DemoRequest
// @Accept json
// @Produce json
// @Param id path string true "Demo Request ID"
// @Param request body dto.UpdateDemoRequestRequest true "Update Demo Request"
// @Success 200 {object} response.Message "Demo request updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/demo-requests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDemoRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDemoRequest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDemoRequestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update demo request")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Demo request updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Demo request updated successfully")
}
