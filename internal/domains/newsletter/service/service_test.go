package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"beacon/config"
	kafkaMocks "beacon/infras/kafka/mocks"
	"beacon/infras/otel/mocks"
	repoMocks "beacon/internal/domains/newsletter/mocks"
	"beacon/internal/domains/newsletter/model"
	"beacon/internal/domains/newsletter/model/dto"
	"beacon/internal/domains/newsletter/service"
	cacheMocks "beacon/shared/cache/mocks"
	gDto "beacon/shared/dto"
	"beacon/shared/failure"
)

func newService(t *testing.T) (service.Newsletter, *repoMocks.MockNewsletter, *cacheMocks.MockRedisCache, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := repoMocks.NewMockNewsletter(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)
	producer := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(repo, cfg, redis, mocks.NewOtel(), producer), repo, redis, producer
}

func TestNewsletterService_Subscribe(t *testing.T) {
	t.Run("subscribes a new address", func(t *testing.T) {
		svc, repo, redis, producer := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Subscriber{}, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sub model.Subscriber) error {
				assert.Equal(t, "jane@acme.io", sub.Email)
				assert.Equal(t, model.StatusSubscribed, sub.Status)

				return nil
			})
		producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := svc.Subscribe(context.Background(), dto.SubscribeRequest{Email: " Jane@Acme.io "})

		require.NoError(t, err)
		assert.Equal(t, "jane@acme.io", res.Email)
		assert.Equal(t, model.StatusSubscribed, res.Status)
	})

	t.Run("is idempotent for an active subscription", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Subscriber{ID: "s1", Email: "jane@acme.io", Status: model.StatusSubscribed}, nil)

		res, err := svc.Subscribe(context.Background(), dto.SubscribeRequest{Email: "jane@acme.io"})

		require.NoError(t, err)
		assert.Equal(t, "s1", res.ID)
	})

	t.Run("reactivates an unsubscribed address", func(t *testing.T) {
		svc, repo, redis, producer := newService(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Subscriber{ID: "s1", Email: "jane@acme.io", Status: model.StatusUnsubscribed}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusSubscribed, fields[model.FieldStatus])

				return nil
			})
		producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := svc.Subscribe(context.Background(), dto.SubscribeRequest{Email: "jane@acme.io"})

		require.NoError(t, err)
		assert.Equal(t, model.StatusSubscribed, res.Status)
	})

	t.Run("rejects a malformed address", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Subscribe(context.Background(), dto.SubscribeRequest{Email: "not-an-email"})

		require.Error(t, err)
		assert.Equal(t, "Email is invalid", failure.FieldErrors(err)["email"])
	})

	t.Run("rejects an empty address", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Subscribe(context.Background(), dto.SubscribeRequest{Email: "  "})

		require.Error(t, err)
		assert.Equal(t, "Email is required", failure.FieldErrors(err)["email"])
	})
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	t.Run("unsubscribes an existing address", func(t *testing.T) {
		svc, repo, redis, _ := newService(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Subscriber{ID: "s1", Email: "jane@acme.io", Status: model.StatusSubscribed}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusUnsubscribed, fields[model.FieldStatus])

				return nil
			})
		redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		err := svc.Unsubscribe(context.Background(), "jane@acme.io")

		require.NoError(t, err)
	})

	t.Run("returns not found for an unknown address", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Subscriber{}, nil)

		err := svc.Unsubscribe(context.Background(), "ghost@acme.io")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestNewsletterService_GetAll(t *testing.T) {
	svc, repo, redis, _ := newService(t)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Subscriber{{ID: "s1", Email: "jane@acme.io", Status: model.StatusSubscribed}}, nil)
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Subscribers, 1)
	assert.Equal(t, 1, res.TotalData)
}
