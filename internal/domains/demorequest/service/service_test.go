package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"beacon/config"
	"beacon/infras/calendar"
	calendarMocks "beacon/infras/calendar/mocks"
	kafkaMocks "beacon/infras/kafka/mocks"
	"beacon/infras/mailer"
	mailerMocks "beacon/infras/mailer/mocks"
	"beacon/infras/otel/mocks"
	"beacon/internal/domains/demorequest/model"
	"beacon/internal/domains/demorequest/model/dto"
	repoMocks "beacon/internal/domains/demorequest/mocks"
	"beacon/internal/domains/demorequest/service"
	cacheMocks "beacon/shared/cache/mocks"
	"beacon/shared/failure"
	"beacon/shared/form"
)

type pipelineMocks struct {
	repo     *repoMocks.MockDemoRequest
	cache    *cacheMocks.MockRedisCache
	calendar *calendarMocks.MockCalendar
	mailer   *mailerMocks.MockMailer
	producer *kafkaMocks.MockClient
}

func newPipeline(t *testing.T, cfg *config.Config) (service.DemoRequest, pipelineMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := pipelineMocks{
		repo:     repoMocks.NewMockDemoRequest(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		calendar: calendarMocks.NewMockCalendar(ctrl),
		mailer:   mailerMocks.NewMockMailer(ctrl),
		producer: kafkaMocks.NewMockClient(ctrl),
	}

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel(), m.calendar, m.mailer, m.producer)

	return svc, m
}

func demoConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Demo.LeadTimeDays = 3
	cfg.Demo.MeetingHour = 14
	cfg.Demo.DurationMinutes = 30
	cfg.Demo.NotificationFailuresNonFatal = true
	cfg.Cache.TTL = 60

	return cfg
}

func validRequest() dto.SubmitDemoRequestRequest {
	return dto.SubmitDemoRequestRequest{
		FullName: "Jane Doe",
		Email:    "jane@acme.io",
		Source:   dto.SourceModal,
	}
}

// expectTail covers the post-notification steps of a successful submission.
func expectTail(m pipelineMocks) {
	m.producer.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
}

func TestDemoRequestService_Submit(t *testing.T) {
	t.Run("schedules a demo end to end", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		var inserted model.DemoRequest

		gomock.InOrder(
			m.repo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, mod model.DemoRequest) error {
					inserted = mod

					return nil
				}),
			m.calendar.EXPECT().
				CreateEvent(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, event calendar.Event) (calendar.ScheduledEvent, error) {
					assert.Equal(t, "Demo call with Jane Doe", event.Summary)
					assert.Equal(t, []string{"jane@acme.io"}, event.Attendees)
					assert.Equal(t, 14, event.Start.Hour())
					assert.Equal(t, float64(30), event.End.Sub(event.Start).Minutes())

					return calendar.ScheduledEvent{ID: "e1", JoinLink: "https://meet.example.com/e1"}, nil
				}),
			m.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, "e1", fields[model.FieldCalendarEventID])
					assert.Equal(t, model.StatusScheduled, fields[model.FieldStatus])

					return nil
				}),
			m.mailer.EXPECT().
				SendConfirmation(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, msg mailer.Confirmation) error {
					assert.Equal(t, "jane@acme.io", msg.To)
					assert.Equal(t, "Jane Doe", msg.Name)
					assert.Equal(t, "https://meet.example.com/e1", msg.MeetingLink)

					return nil
				}),
			m.mailer.EXPECT().
				SendAdminAlert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, msg mailer.AdminAlert) error {
					assert.Equal(t, "Jane Doe", msg.CustomerName)
					assert.Equal(t, "jane@acme.io", msg.Email)

					return nil
				}),
		)
		expectTail(m)

		res, err := svc.Submit(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, inserted.ID, res.Request.ID)
		assert.Equal(t, model.StatusScheduled, res.Request.Status)
		assert.Equal(t, "e1", res.Request.CalendarEventID)
		assert.Equal(t, "https://meet.example.com/e1", res.MeetingLink)
		assert.NotEmpty(t, res.Date)
		assert.Equal(t, "14:00", res.Time)
	})

	t.Run("rejects invalid input before any side effect", func(t *testing.T) {
		svc, _ := newPipeline(t, demoConfig())

		_, err := svc.Submit(context.Background(), dto.SubmitDemoRequestRequest{
			FullName: "",
			Email:    "not-an-email",
			Source:   dto.SourceModal,
		})

		require.Error(t, err)
		fields := failure.FieldErrors(err)
		assert.Equal(t, "Name is required", fields[form.FieldFullName])
		assert.Equal(t, "Email is invalid", fields[form.FieldEmail])
	})

	t.Run("contact form requires company and message", func(t *testing.T) {
		svc, _ := newPipeline(t, demoConfig())

		_, err := svc.Submit(context.Background(), dto.SubmitDemoRequestRequest{
			FullName: "Jane Doe",
			Email:    "jane@acme.io",
			Source:   dto.SourceContact,
		})

		require.Error(t, err)
		fields := failure.FieldErrors(err)
		assert.Contains(t, fields, form.FieldCompanyName)
		assert.Contains(t, fields, form.FieldDescription)
	})

	t.Run("persistence failure stops the pipeline", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused"))

		_, err := svc.Submit(context.Background(), validRequest())

		require.Error(t, err)
	})

	t.Run("calendar failure aborts after persistence", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{}, failure.BadGateway("calendar unavailable"))

		_, err := svc.Submit(context.Background(), validRequest())

		require.Error(t, err)
	})

	t.Run("calendar failure cancels the request when compensation is on", func(t *testing.T) {
		cfg := demoConfig()
		cfg.Demo.CompensateOnFailure = true
		svc, m := newPipeline(t, cfg)

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{}, failure.BadGateway("calendar unavailable"))
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})

		_, err := svc.Submit(context.Background(), validRequest())

		require.Error(t, err)
	})

	t.Run("link failure deletes the event when compensation is on", func(t *testing.T) {
		cfg := demoConfig()
		cfg.Demo.CompensateOnFailure = true
		svc, m := newPipeline(t, cfg)

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{ID: "e1"}, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("deadlock detected"))
		m.calendar.EXPECT().DeleteEvent(gomock.Any(), "e1").Return(nil)

		_, err := svc.Submit(context.Background(), validRequest())

		require.Error(t, err)
	})

	t.Run("email failures do not fail the booking", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{ID: "e1", JoinLink: "https://meet.example.com/e1"}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().
			SendConfirmation(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp timeout"))
		m.mailer.EXPECT().
			SendAdminAlert(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp timeout"))
		expectTail(m)

		res, err := svc.Submit(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, model.StatusScheduled, res.Request.Status)
	})

	t.Run("admin alert is still attempted after confirmation fails", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{ID: "e1"}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().
			SendConfirmation(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp timeout"))
		m.mailer.EXPECT().SendAdminAlert(gomock.Any(), gomock.Any()).Return(nil)
		expectTail(m)

		_, err := svc.Submit(context.Background(), validRequest())

		require.NoError(t, err)
	})

	t.Run("email failures fail the booking under the strict policy", func(t *testing.T) {
		cfg := demoConfig()
		cfg.Demo.NotificationFailuresNonFatal = false
		svc, m := newPipeline(t, cfg)

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{ID: "e1"}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().
			SendConfirmation(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp timeout"))
		m.mailer.EXPECT().SendAdminAlert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Submit(context.Background(), validRequest())

		require.Error(t, err)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{ID: "e1"}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().SendAdminAlert(gomock.Any(), gomock.Any()).Return(nil)
		m.producer.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("broker down"))
		m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		_, err := svc.Submit(context.Background(), validRequest())

		require.NoError(t, err)
	})

	t.Run("rejects a second submission while one is in flight", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		firstEntered := make(chan struct{})
		releaseFirst := make(chan struct{})

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, model.DemoRequest) error {
				close(firstEntered)
				<-releaseFirst

				return nil
			})
		m.calendar.EXPECT().
			CreateEvent(gomock.Any(), gomock.Any()).
			Return(calendar.ScheduledEvent{ID: "e1"}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().SendAdminAlert(gomock.Any(), gomock.Any()).Return(nil)
		expectTail(m)

		var wg sync.WaitGroup
		wg.Add(1)

		var firstErr error

		go func() {
			defer wg.Done()

			_, firstErr = svc.Submit(context.Background(), validRequest())
		}()

		<-firstEntered

		_, secondErr := svc.Submit(context.Background(), validRequest())
		require.Error(t, secondErr)
		assert.Equal(t, 409, failure.GetCode(secondErr))

		close(releaseFirst)
		wg.Wait()
		require.NoError(t, firstErr)
	})
}

func TestDemoRequestService_Update(t *testing.T) {
	svc, m := newPipeline(t, demoConfig())

	m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	m.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])

			return nil
		})
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.Update(context.Background(), dto.UpdateDemoRequestRequest{Status: model.StatusCompleted}, "r1")

	require.NoError(t, err)
}

func TestDemoRequestService_Update_NotFound(t *testing.T) {
	svc, m := newPipeline(t, demoConfig())

	m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Update(context.Background(), dto.UpdateDemoRequestRequest{Status: model.StatusCompleted}, "missing")

	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestDemoRequestService_Get(t *testing.T) {
	t.Run("returns from cache on hit", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.DemoRequestResponse)
				if ok {
					res.ID = "r1"
				}

				return nil
			})

		res, err := svc.Get(context.Background(), "r1")

		require.NoError(t, err)
		assert.Equal(t, "r1", res.ID)
	})

	t.Run("falls back to the repository on miss", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.DemoRequest{ID: "r1", FullName: "Jane Doe", Status: model.StatusScheduled}, nil)
		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "r1")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", res.FullName)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		svc, m := newPipeline(t, demoConfig())

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.DemoRequest{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
