package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"beacon/config"
	"beacon/infras/otel/mocks"
	contactMocks "beacon/internal/domains/contact/mocks"
	demoRepoMocks "beacon/internal/domains/demorequest/mocks"
	newsletterMocks "beacon/internal/domains/newsletter/mocks"
	"beacon/internal/domains/stats/model/dto"
	"beacon/internal/domains/stats/service"
	cacheMocks "beacon/shared/cache/mocks"
)

func TestStatsService_Dashboard(t *testing.T) {
	t.Run("aggregates counts across domains", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		demoRequests := demoRepoMocks.NewMockDemoRequest(ctrl)
		subscribers := newsletterMocks.NewMockNewsletter(ctrl)
		messages := contactMocks.NewMockContact(ctrl)
		redis := cacheMocks.NewMockRedisCache(ctrl)

		cfg := &config.Config{}
		cfg.Cache.TTL = 60

		svc := service.New(demoRequests, subscribers, messages, cfg, redis, mocks.NewOtel())

		redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		demoRequests.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
		demoRequests.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil)
		subscribers.EXPECT().Count(gomock.Any(), gomock.Any()).Return(240, nil)
		messages.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
		redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Dashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 12, res.TotalDemoRequests)
		assert.Equal(t, 7, res.ScheduledDemoRequests)
		assert.Equal(t, 240, res.TotalSubscribers)
		assert.Equal(t, 3, res.NewContactMessages)
	})

	t.Run("serves from cache when present", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		demoRequests := demoRepoMocks.NewMockDemoRequest(ctrl)
		subscribers := newsletterMocks.NewMockNewsletter(ctrl)
		messages := contactMocks.NewMockContact(ctrl)
		redis := cacheMocks.NewMockRedisCache(ctrl)

		cfg := &config.Config{}

		svc := service.New(demoRequests, subscribers, messages, cfg, redis, mocks.NewOtel())

		redis.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.DashboardStatsResponse)
				if ok {
					res.TotalDemoRequests = 12
				}

				return nil
			})

		res, err := svc.Dashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 12, res.TotalDemoRequests)
	})
}
