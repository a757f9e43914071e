//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"beacon/config"
	"beacon/infras/calendar"
	"beacon/infras/jwt"
	"beacon/infras/kafka"
	"beacon/infras/mailer"
	"beacon/infras/otel"
	"beacon/infras/postgres"
	"beacon/infras/redis"
	"beacon/permissions"
	"beacon/shared/cache"
	"beacon/transport/http"
	"beacon/transport/http/middleware"
	"beacon/transport/http/router"

	authService "beacon/internal/domains/auth/service"
	contactRepository "beacon/internal/domains/contact/repository"
	contactService "beacon/internal/domains/contact/service"
	demoRequestRepository "beacon/internal/domains/demorequest/repository"
	demoRequestService "beacon/internal/domains/demorequest/service"
	newsletterRepository "beacon/internal/domains/newsletter/repository"
	newsletterService "beacon/internal/domains/newsletter/service"
	statsService "beacon/internal/domains/stats/service"
	userRepository "beacon/internal/domains/user/repository"
	userService "beacon/internal/domains/user/service"

	authHandler "beacon/internal/handlers/auth"
	contactHandler "beacon/internal/handlers/contact"
	demoRequestHandler "beacon/internal/handlers/demorequest"
	newsletterHandler "beacon/internal/handlers/newsletter"
	statsHandler "beacon/internal/handlers/stats"
	userHandler "beacon/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	calendar.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var demoRequestDomain = wire.NewSet(
	demoRequestRepository.New,
	demoRequestService.New,
)

var newsletterDomain = wire.NewSet(
	newsletterRepository.New,
	newsletterService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var statsDomain = wire.NewSet(
	statsService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var domains = wire.NewSet(
	demoRequestDomain,
	newsletterDomain,
	contactDomain,
	statsDomain,
	authDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	demoRequestHandler.New,
	newsletterHandler.New,
	contactHandler.New,
	statsHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
