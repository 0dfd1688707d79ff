package router

import (
	"github.com/go-chi/chi/v5"

	"checkin/internal/handlers/auth"
	"checkin/internal/handlers/dashboard"
	"checkin/internal/handlers/guest"
	"checkin/internal/handlers/hotel"
	"checkin/internal/handlers/user"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Hotel     hotel.Handler
	Guest     guest.Handler
	User      user.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
