//go:build wireinject
// +build wireinject

package di

import (
	"examsync/config"
	"examsync/infras/jwt"
	"examsync/infras/kafka"
	"examsync/infras/otel"
	"examsync/infras/postgres"
	"examsync/infras/redis"
	"examsync/infras/s3"
	"examsync/permissions"
	"examsync/shared/cache"
	"examsync/transport/http"
	"examsync/transport/http/middleware"
	"examsync/transport/http/router"

	roomRepository "examsync/internal/domains/room/repository"
	roomService "examsync/internal/domains/room/service"
	scheduleRepository "examsync/internal/domains/schedule/repository"
	scheduleService "examsync/internal/domains/schedule/service"

	roomHandler "examsync/internal/handlers/room"
	scheduleHandler "examsync/internal/handlers/schedule"

	"github.com/google/wire"
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
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var domains = wire.NewSet(
	scheduleDomain,
	roomDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	scheduleHandler.New,
	roomHandler.New,
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
