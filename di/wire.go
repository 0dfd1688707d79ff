//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"checkin/config"
	"checkin/infras/jwt"
	"checkin/infras/kafka"
	"checkin/infras/otel"
	"checkin/infras/postgres"
	"checkin/infras/qr"
	"checkin/infras/redis"
	"checkin/infras/s3"
	"checkin/permissions"
	"checkin/shared/cache"
	"checkin/shared/lock"
	"checkin/transport/http"
	"checkin/transport/http/middleware"
	"checkin/transport/http/router"

	authService "checkin/internal/domains/auth/service"
	dashboardService "checkin/internal/domains/dashboard/service"
	guestRepository "checkin/internal/domains/guest/repository"
	guestService "checkin/internal/domains/guest/service"
	hotelRepository "checkin/internal/domains/hotel/repository"
	hotelService "checkin/internal/domains/hotel/service"
	userRepository "checkin/internal/domains/user/repository"
	userService "checkin/internal/domains/user/service"

	authHandler "checkin/internal/handlers/auth"
	dashboardHandler "checkin/internal/handlers/dashboard"
	guestHandler "checkin/internal/handlers/guest"
	hotelHandler "checkin/internal/handlers/hotel"
	userHandler "checkin/internal/handlers/user"
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
	s3.New,
	qr.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewKeyed,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var accountDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var domains = wire.NewSet(
	hotelDomain,
	guestDomain,
	accountDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hotelHandler.New,
	guestHandler.New,
	userHandler.New,
	dashboardHandler.New,
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
