package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"beacon/config"
	"beacon/infras/kafka"
	"beacon/infras/otel"
	"beacon/internal/domains/newsletter/model"
	"beacon/internal/domains/newsletter/model/dto"
	"beacon/internal/domains/newsletter/repository"
	"beacon/shared"
	"beacon/shared/cache"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
	"beacon/shared/failure"
	"beacon/shared/form"
	"beacon/shared/timezone"
)

const (
	cacheGetAllSubscriber = "newsletter:gets"
	cacheCountSubscriber  = "newsletter:count"

	eventsTopic     = "marketing.newsletter"
	eventSubscribed = "newsletter.subscribed"
	systemActor     = "system"
)

type Newsletter interface {
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (dto.SubscriberResponse, error)
	Unsubscribe(ctx context.Context, email string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSubscribersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type subscribedEventPayload struct {
	Event        string `json:"event"`
	SubscriberID string `json:"subscriber_id"`
	Email        string `json:"email"`
	OccurredAt   string `json:"occurred_at"`
}

type serviceImpl struct {
	repo     repository.Newsletter
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Client
}

func New(
	repo repository.Newsletter,
	cfg *config.Config,
	cache cache.RedisCache,
	ot otel.Otel,
	producer kafka.Client,
) Newsletter {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     ot,
		producer: producer,
	}
}

// Subscribe is idempotent per address: an already subscribed address returns
// the existing record, a previously unsubscribed one is reactivated.
func (s *serviceImpl) Subscribe(ctx context.Context, req dto.SubscribeRequest) (res dto.SubscriberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Subscribe")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	if req.Email == constant.Empty {
		return res, failure.FromFields(form.Errors{form.FieldEmail: form.MsgEmailRequired}) //nolint:wrapcheck
	}

	if !form.ValidEmail(req.Email) {
		return res, failure.FromFields(form.Errors{form.FieldEmail: form.MsgEmailInvalid}) //nolint:wrapcheck
	}

	filter := shared.FilterByID(req.Email, model.FieldEmail, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up subscriber")

		return res, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.Status == model.StatusSubscribed {
			res.FromModel(existing)

			return res, nil
		}

		resubscribed := map[string]any{
			model.FieldStatus:        model.StatusSubscribed,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: systemActor,
		}

		if err = s.repo.Update(ctx, resubscribed, filter); err != nil {
			log.Error().Err(err).Msg("failed to resubscribe")

			return res, fmt.Errorf("failed to resubscribe: %w", err)
		}

		existing.Status = model.StatusSubscribed
		s.publishSubscribed(ctx, existing)
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllSubscriber)
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheCountSubscriber)

		res.FromModel(existing)

		return res, nil
	}

	subscriber := req.ToModel(constant.ContextGuest)

	if err = s.repo.Insert(ctx, subscriber); err != nil {
		log.Error().Err(err).Msg("failed to insert subscriber")

		return res, fmt.Errorf("failed to insert subscriber: %w", err)
	}

	s.publishSubscribed(ctx, subscriber)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllSubscriber)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheCountSubscriber)

	res.FromModel(subscriber)

	return res, nil
}

func (s *serviceImpl) Unsubscribe(ctx context.Context, email string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unsubscribe")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(email, model.FieldEmail, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up subscriber")

		return fmt.Errorf("failed to look up subscriber: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("subscriber not found") //nolint:wrapcheck
	}

	unsubscribed := map[string]any{
		model.FieldStatus:        model.StatusUnsubscribed,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: systemActor,
	}

	if err = s.repo.Update(ctx, unsubscribed, filter); err != nil {
		log.Error().Err(err).Msg("failed to unsubscribe")

		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllSubscriber)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheCountSubscriber)

	return nil
}

func (s *serviceImpl) publishSubscribed(ctx context.Context, subscriber model.Subscriber) {
	payload := subscribedEventPayload{
		Event:        eventSubscribed,
		SubscriberID: subscriber.ID,
		Email:        subscriber.Email,
		OccurredAt:   timezone.Format(timezone.Now(), constant.DateFormat),
	}

	err := s.producer.SendMessages(context.WithoutCancel(ctx), eventsTopic, kafka.Message{
		Key:   subscriber.ID,
		Value: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("subscriber_id", subscriber.ID).Msg("failed to publish subscribed event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSubscribersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSubscriber, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for subscribers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count subscribers")

		return res, fmt.Errorf("failed to count subscribers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get subscribers")

		return res, fmt.Errorf("failed to get subscribers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save subscribers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSubscriber, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for subscriber count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count subscribers")

		return res, fmt.Errorf("failed to count subscribers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save subscriber count to cache")
		}
	}()

	return res, nil
}
