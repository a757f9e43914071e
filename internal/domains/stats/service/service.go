package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"beacon/config"
	"beacon/infras/otel"
	contactModel "beacon/internal/domains/contact/model"
	contactRepo "beacon/internal/domains/contact/repository"
	demoModel "beacon/internal/domains/demorequest/model"
	demoRepo "beacon/internal/domains/demorequest/repository"
	newsletterModel "beacon/internal/domains/newsletter/model"
	newsletterRepo "beacon/internal/domains/newsletter/repository"
	"beacon/internal/domains/stats/model/dto"
	"beacon/shared/cache"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
)

const cacheDashboardStats = "stats:dashboard"

type Stats interface {
	Dashboard(ctx context.Context) (dto.DashboardStatsResponse, error)
}

type serviceImpl struct {
	demoRequests demoRepo.DemoRequest
	subscribers  newsletterRepo.Newsletter
	messages     contactRepo.Contact
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	demoRequests demoRepo.DemoRequest,
	subscribers newsletterRepo.Newsletter,
	messages contactRepo.Contact,
	cfg *config.Config,
	cache cache.RedisCache,
	ot otel.Otel,
) Stats {
	return &serviceImpl{
		demoRequests: demoRequests,
		subscribers:  subscribers,
		messages:     messages,
		cfg:          cfg,
		cache:        cache,
		otel:         ot,
	}
}

// Dashboard aggregates the admin landing counters. The whole payload is
// cached under one key since the counters always render together.
func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheDashboardStats, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheDashboardStats).Msg("cache hit for dashboard stats")

		return res, nil
	}

	res.TotalDemoRequests, err = s.demoRequests.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count demo requests")

		return res, fmt.Errorf("failed to count demo requests: %w", err)
	}

	res.ScheduledDemoRequests, err = s.demoRequests.Count(ctx, statusFilter(demoModel.TableName, demoModel.FieldStatus, demoModel.StatusScheduled))
	if err != nil {
		log.Error().Err(err).Msg("failed to count scheduled demo requests")

		return res, fmt.Errorf("failed to count scheduled demo requests: %w", err)
	}

	res.TotalSubscribers, err = s.subscribers.Count(ctx, statusFilter(newsletterModel.TableName, newsletterModel.FieldStatus, newsletterModel.StatusSubscribed))
	if err != nil {
		log.Error().Err(err).Msg("failed to count subscribers")

		return res, fmt.Errorf("failed to count subscribers: %w", err)
	}

	res.NewContactMessages, err = s.messages.Count(ctx, statusFilter(contactModel.TableName, contactModel.FieldStatus, contactModel.StatusNew))
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheDashboardStats, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard stats to cache")
		}
	}()

	return res, nil
}

func statusFilter(table, field, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    table,
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
			},
		},
	}
}
