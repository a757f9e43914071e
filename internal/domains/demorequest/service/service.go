package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"beacon/config"
	"beacon/infras/calendar"
	"beacon/infras/kafka"
	"beacon/infras/mailer"
	"beacon/infras/otel"
	"beacon/internal/domains/demorequest/model"
	"beacon/internal/domains/demorequest/model/dto"
	"beacon/internal/domains/demorequest/repository"
	"beacon/shared"
	"beacon/shared/cache"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
	"beacon/shared/failure"
	"beacon/shared/form"
	"beacon/shared/timezone"
)

const (
	cacheGetDemoRequest    = "demorequest:get"
	cacheGetAllDemoRequest = "demorequest:gets"
	cacheCountDemoRequest  = "demorequest:count"

	eventsTopic      = "marketing.demo-requests"
	eventScheduled   = "demo_request.scheduled"
	meetingLocation  = "Online"
	systemActor      = "system"
	meetingDateParts = "2006-01-02"
	meetingTimeParts = "15:04"
)

type DemoRequest interface {
	Submit(ctx context.Context, req dto.SubmitDemoRequestRequest) (dto.SubmitDemoRequestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDemoRequestsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DemoRequestResponse, error)
	Update(ctx context.Context, req dto.UpdateDemoRequestRequest, id string) error
}

type scheduledEventPayload struct {
	Event           string `json:"event"`
	RequestID       string `json:"request_id"`
	Email           string `json:"email"`
	CalendarEventID string `json:"calendar_event_id"`
	OccurredAt      string `json:"occurred_at"`
}

type serviceImpl struct {
	repo     repository.DemoRequest
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	calendar calendar.Calendar
	mailer   mailer.Mailer
	producer kafka.Client

	// one submission in flight per requester email
	inflight sync.Map
}

func New(
	repo repository.DemoRequest,
	cfg *config.Config,
	cache cache.RedisCache,
	ot otel.Otel,
	cal calendar.Calendar,
	mail mailer.Mailer,
	producer kafka.Client,
) DemoRequest {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     ot,
		calendar: cal,
		mailer:   mail,
		producer: producer,
	}
}

// Submit runs the booking pipeline for one demo request: validate, persist as
// pending, create the calendar event, link it, then send the confirmation and
// admin emails. Validation failures stop before any side effect; persistence
// and calendar failures abort the pipeline; email failures are logged and
// swallowed when the non-fatal notification policy is on.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitDemoRequestRequest) (res dto.SubmitDemoRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	if fieldErrs := form.Validate(req.FormInput(), req.Profile()); !fieldErrs.Valid() {
		return res, failure.FromFields(fieldErrs) //nolint:wrapcheck
	}

	inflightKey := strings.ToLower(strings.TrimSpace(req.Email))
	if _, loaded := s.inflight.LoadOrStore(inflightKey, struct{}{}); loaded {
		return res, failure.Conflict("a submission for this email is already in progress") //nolint:wrapcheck
	}
	defer s.inflight.Delete(inflightKey)

	request := req.ToModel(constant.ContextGuest)

	if err = s.repo.Insert(ctx, request); err != nil {
		log.Error().Err(err).Msg("failed to persist demo request")

		return res, fmt.Errorf("failed to persist demo request: %w", err)
	}

	start, end := s.meetingWindow()

	event, err := s.calendar.CreateEvent(ctx, calendar.Event{
		Summary:     "Demo call with " + request.FullName,
		Description: req.Description,
		Start:       start,
		End:         end,
		Attendees:   []string{request.Email},
		Location:    meetingLocation,
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", request.ID).Msg("failed to create calendar event")
		s.compensateCalendarFailure(ctx, request.ID)

		return res, fmt.Errorf("failed to create calendar event: %w", err)
	}

	linkedFields := map[string]any{
		model.FieldCalendarEventID: event.ID,
		model.FieldStatus:          model.StatusScheduled,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   systemActor,
	}

	if err = s.repo.Update(ctx, linkedFields, shared.FilterByID(request.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("request_id", request.ID).Msg("failed to link calendar event")
		s.compensateLinkFailure(ctx, event.ID)

		return res, fmt.Errorf("failed to link calendar event: %w", err)
	}

	request.CalendarEventID = &event.ID
	request.Status = model.StatusScheduled

	if err = s.notify(ctx, request, event, start); err != nil {
		return res, err
	}

	s.publishScheduled(ctx, request, event.ID)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllDemoRequest)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheCountDemoRequest)

	res.Request.FromModel(request)
	res.MeetingLink = event.JoinLink
	res.Date = start.Format(meetingDateParts)
	res.Time = start.Format(meetingTimeParts)

	scope.AddEvent("Demo request scheduled: " + request.ID)

	return res, nil
}

// notify sends both transactional emails. Under the non-fatal policy failures
// are logged and the pipeline still succeeds; otherwise the first failure is
// returned, leaving the request scheduled.
func (s *serviceImpl) notify(ctx context.Context, request model.DemoRequest, event calendar.ScheduledEvent, start time.Time) error {
	confirmErr := s.mailer.SendConfirmation(ctx, mailer.Confirmation{
		To:          request.Email,
		Name:        request.FullName,
		Date:        start.Format(meetingDateParts),
		Time:        start.Format(meetingTimeParts),
		MeetingLink: event.JoinLink,
		CompanyName: derefOrEmpty(request.CompanyName),
		Description: derefOrEmpty(request.Description),
	})
	if confirmErr != nil {
		log.Error().Err(confirmErr).Str("request_id", request.ID).Msg("failed to send confirmation email")
	}

	alertErr := s.mailer.SendAdminAlert(ctx, mailer.AdminAlert{
		CustomerName:  request.FullName,
		Company:       derefOrEmpty(request.CompanyName),
		Email:         request.Email,
		ScheduledDate: start.Format(meetingDateParts),
		Description:   derefOrEmpty(request.Description),
	})
	if alertErr != nil {
		log.Error().Err(alertErr).Str("request_id", request.ID).Msg("failed to send admin alert email")
	}

	if s.cfg.Demo.NotificationFailuresNonFatal {
		return nil
	}

	if confirmErr != nil {
		return fmt.Errorf("failed to send confirmation email: %w", confirmErr)
	}

	if alertErr != nil {
		return fmt.Errorf("failed to send admin alert email: %w", alertErr)
	}

	return nil
}

// compensateCalendarFailure marks the freshly created request cancelled so a
// failed calendar step does not leave a pending orphan. Off by default.
func (s *serviceImpl) compensateCalendarFailure(ctx context.Context, requestID string) {
	if !s.cfg.Demo.CompensateOnFailure {
		return
	}

	cancelled := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: systemActor,
	}

	if err := s.repo.Update(ctx, cancelled, shared.FilterByID(requestID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("failed to cancel demo request during compensation")
	}
}

// compensateLinkFailure removes the dangling calendar event when the linkage
// update failed. Off by default.
func (s *serviceImpl) compensateLinkFailure(ctx context.Context, eventID string) {
	if !s.cfg.Demo.CompensateOnFailure {
		return
	}

	if err := s.calendar.DeleteEvent(ctx, eventID); err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("failed to delete calendar event during compensation")
	}
}

func (s *serviceImpl) publishScheduled(ctx context.Context, request model.DemoRequest, eventID string) {
	payload := scheduledEventPayload{
		Event:           eventScheduled,
		RequestID:       request.ID,
		Email:           request.Email,
		CalendarEventID: eventID,
		OccurredAt:      timezone.Format(timezone.Now(), constant.DateFormat),
	}

	err := s.producer.SendMessages(context.WithoutCancel(ctx), eventsTopic, kafka.Message{
		Key:   request.ID,
		Value: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", request.ID).Msg("failed to publish scheduled event")
	}
}

// meetingWindow applies the configured policy: N days from now, at the
// configured hour in the application timezone, for the configured duration.
func (s *serviceImpl) meetingWindow() (time.Time, time.Time) {
	day := timezone.Now().AddDate(0, 0, s.cfg.Demo.LeadTimeDays)
	start := time.Date(day.Year(), day.Month(), day.Day(), s.cfg.Demo.MeetingHour, 0, 0, 0, timezone.GetLocation())

	return start, start.Add(time.Duration(s.cfg.Demo.DurationMinutes) * time.Minute)
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDemoRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDemoRequest, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for demo requests")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count demo requests")

		return res, fmt.Errorf("failed to count demo requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get demo requests")

		return res, fmt.Errorf("failed to get demo requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save demo requests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDemoRequest, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for demo request count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count demo requests")

		return res, fmt.Errorf("failed to count demo requests: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save demo request count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DemoRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDemoRequest, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for demo request")

		return res, nil
	}

	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get demo request")

		return res, fmt.Errorf("failed to get demo request: %w", err)
	}

	if request.ID == constant.Empty {
		return res, failure.NotFound("demo request not found") //nolint:wrapcheck
	}

	res.FromModel(request)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save demo request to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDemoRequestRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateDemoRequestRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if demo request exists")

		return fmt.Errorf("failed to check if demo request exists: %w", err)
	}

	if !exist {
		log.Error().Msg("demo request not found")

		return failure.NotFound("demo request not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update demo request")

		return fmt.Errorf("failed to update demo request: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDemoRequest, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete demo request from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDemoRequest)
		shared.InvalidateCaches(c, s.cache, cacheCountDemoRequest)
	}()

	return nil
}
