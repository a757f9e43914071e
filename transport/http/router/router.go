package router

import (
	"github.com/go-chi/chi/v5"

	"beacon/internal/handlers/auth"
	"beacon/internal/handlers/contact"
	"beacon/internal/handlers/demorequest"
	"beacon/internal/handlers/newsletter"
	"beacon/internal/handlers/stats"
	"beacon/internal/handlers/user"
	"beacon/transport/http/middleware"
)

type DomainHandlers struct {
	Auth        auth.Handler
	DemoRequest demorequest.Handler
	Newsletter  newsletter.Handler
	Contact     contact.Handler
	Stats       stats.Handler
	User        user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.DemoRequest.Router(routerGroup)
		r.DomainHandlers.Newsletter.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Stats.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthRole:       authRole,
	}
}
