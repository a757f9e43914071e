package calendar

//go:generate go run go.uber.org/mock/mockgen -source=./calendar.go -destination=./mocks/calendar_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog/log"

	"beacon/config"
	"beacon/infras/otel"
	"beacon/shared/constant"
	"beacon/shared/failure"
)

// Event describes a meeting to be created on the scheduling provider.
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees"`
	Location    string    `json:"location,omitempty"`
}

// ScheduledEvent is the provider's handle for a created meeting.
type ScheduledEvent struct {
	ID       string `json:"id"`
	JoinLink string `json:"join_link"`
}

type Calendar interface {
	CreateEvent(ctx context.Context, event Event) (ScheduledEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

type clientImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	httpClient *http.Client
}

func New(cfg *config.Config, ot otel.Otel) Calendar {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = time.Duration(cfg.External.Calendar.TimeoutSeconds) * time.Second

	if !cfg.External.Calendar.Enable {
		log.Warn().Msg("Calendar integration disabled, events will be simulated")
	}

	return &clientImpl{
		cfg:        cfg,
		otel:       ot,
		httpClient: httpClient,
	}
}

func (c *clientImpl) CreateEvent(ctx context.Context, event Event) (res ScheduledEvent, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".calendar.CreateEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !c.cfg.External.Calendar.Enable {
		res = ScheduledEvent{
			ID:       uuid.NewString(),
			JoinLink: "https://meet.example.com/" + uuid.NewString(),
		}

		log.Info().
			Str("summary", event.Summary).
			Time("start", event.Start).
			Str("event_id", res.ID).
			Msg("Calendar disabled, simulated event creation")

		return res, nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return res, fmt.Errorf("failed to encode calendar event: %w", err)
	}

	url := c.cfg.External.Calendar.BaseURL + "/v1/events"

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("failed to build calendar request: %w", err)
	}

	c.authorize(request)
	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	response, err := c.httpClient.Do(request)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("calendar event creation failed")

		return res, fmt.Errorf("failed to create calendar event: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", response.StatusCode).Str("url", url).Msg("calendar provider rejected event")

		return res, failure.BadGateway(fmt.Sprintf("calendar provider returned status %d", response.StatusCode)) //nolint:wrapcheck
	}

	if err = json.NewDecoder(response.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("failed to decode calendar response: %w", err)
	}

	scope.SetAttribute("calendar.event_id", res.ID)

	return res, nil
}

func (c *clientImpl) DeleteEvent(ctx context.Context, id string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".calendar.DeleteEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !c.cfg.External.Calendar.Enable {
		log.Info().Str("event_id", id).Msg("Calendar disabled, simulated event deletion")

		return nil
	}

	url := c.cfg.External.Calendar.BaseURL + "/v1/events/" + id

	request, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build calendar request: %w", err)
	}

	c.authorize(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("calendar event deletion failed")

		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return failure.BadGateway(fmt.Sprintf("calendar provider returned status %d", response.StatusCode)) //nolint:wrapcheck
	}

	return nil
}

func (c *clientImpl) authorize(request *http.Request) {
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+c.cfg.External.Calendar.APIKey)
}
