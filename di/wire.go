//go:build wireinject
// +build wireinject

package di

import (
	"hms/config"
	"hms/infras/otel"
	"hms/infras/redis"
	"hms/infras/upstream"
	billingHandler "hms/internal/handlers/billing"
	"hms/shared/cache"
	"hms/transport/http"
	"hms/transport/http/middleware"
	"hms/transport/http/router"

	billingRepository "hms/internal/domains/billing/repository"
	billingService "hms/internal/domains/billing/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	upstream.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var billingDomain = wire.NewSet(
	billingRepository.NewBookings,
	billingRepository.NewRooms,
	billingRepository.NewServices,
	billingRepository.NewDiscounts,
	billingRepository.NewInvoices,
	billingRepository.NewCustomers,
	billingService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	billingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		billingDomain,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
