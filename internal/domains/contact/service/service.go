package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"beacon/config"
	"beacon/infras/otel"
	"beacon/internal/domains/contact/model"
	"beacon/internal/domains/contact/model/dto"
	"beacon/internal/domains/contact/repository"
	"beacon/shared"
	"beacon/shared/cache"
	"beacon/shared/constant"
	gDto "beacon/shared/dto"
	"beacon/shared/failure"
	"beacon/shared/form"
)

const (
	cacheGetContactMessage    = "contact:get"
	cacheGetAllContactMessage = "contact:gets"
	cacheCountContactMessage  = "contact:count"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactMessageRequest) (dto.ContactMessageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContactMessagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ContactMessageResponse, error)
	Update(ctx context.Context, req dto.UpdateContactMessageRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Contact
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, ot otel.Otel) Contact {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  ot,
	}
}

// Create validates with the contact profile, so company and message are
// required on top of name and email.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactMessageRequest) (res dto.ContactMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if fieldErrs := form.Validate(req.FormInput(), form.ContactProfile); !fieldErrs.Valid() {
		return res, failure.FromFields(fieldErrs) //nolint:wrapcheck
	}

	message := req.ToModel(constant.ContextGuest)

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to insert contact message")

		return res, fmt.Errorf("failed to insert contact message: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllContactMessage)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheCountContactMessage)

	res.FromModel(message)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContactMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllContactMessage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for contact messages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contact messages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountContactMessage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for contact message count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contact message count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContactMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetContactMessage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for contact message")

		return res, nil
	}

	message, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact message")

		return res, fmt.Errorf("failed to get contact message: %w", err)
	}

	if message.ID == constant.Empty {
		return res, failure.NotFound("contact message not found") //nolint:wrapcheck
	}

	res.FromModel(message)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contact message to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateContactMessageRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateContactMessageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if contact message exists")

		return fmt.Errorf("failed to check if contact message exists: %w", err)
	}

	if !exist {
		log.Error().Msg("contact message not found")

		return failure.NotFound("contact message not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update contact message")

		return fmt.Errorf("failed to update contact message: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContactMessage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete contact message from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllContactMessage)
		shared.InvalidateCaches(c, s.cache, cacheCountContactMessage)
	}()

	return nil
}
