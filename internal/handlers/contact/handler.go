package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"beacon/infras/otel"
	"beacon/internal/domains/contact/model"
	"beacon/internal/domains/contact/model/dto"
	"beacon/internal/domains/contact/service"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
	"beacon/shared/validator"
	"beacon/transport/http/response"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact-messages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContactMessage)
		routerGroup.Get("/", handler.GetContactMessages)
		routerGroup.Get("/{id}", handler.GetContactMessageByID)
		routerGroup.Patch("/{id}", handler.UpdateContactMessage)
	})
}

// CreateContactMessage stores a contact form submission.
// @Summary Submit a contact message
// @Description Validate and store a contact page submission.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactMessageRequest true "Create Contact Message Request"
// @Success 201 {object} response.Data[dto.ContactMessageResponse] "Contact message stored"
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact-messages [post]
func (handler *Handler) CreateContactMessage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContactMessage")
	defer scope.End()

	req := dto.CreateContactMessageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contact message stored: " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetContactMessages retrieves all contact messages based on query parameters.
// @Summary Get all contact messages
// @Description Retrieve all contact messages with optional filtering and pagination.
// @Tags Contact
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (new, read, replied)"
// @Success 200 {object} response.Data[dto.GetContactMessagesResponse] "List of contact messages"
// @Failure 500 {object} response.Error
// @Router /v1/contact-messages [get]
// @Security BearerAuth
func (handler *Handler) GetContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactMessages")
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

	messages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, messages)
}

// GetContactMessageByID retrieves a contact message by its ID.
// @Summary Get a contact message by ID
// @Description Retrieve a contact message by its unique identifier.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact Message ID"
// @Success 200 {object} response.Data[dto.ContactMessageResponse] "Contact message details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact-messages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactMessageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactMessageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	message, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact message by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact message retrieved successfully")

	response.WithJSON(w, http.StatusOK, message)
}

// UpdateContactMessage updates an existing contact message by its ID.
// @Summary Update a contact message by ID
// @Description Update the status of an existing contact message.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact Message ID"
// @Param request body dto.UpdateContactMessageRequest true "Update Contact Message Request"
// @Success 200 {object} response.Message "Contact message updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact-messages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateContactMessageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact message updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Contact message updated successfully")
}
