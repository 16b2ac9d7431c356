package router

import (
	"github.com/eshopexpress/backend/internal/application"
	"github.com/eshopexpress/backend/internal/container"
	repo "github.com/eshopexpress/backend/internal/domain/repository"
	pginfra "github.com/eshopexpress/backend/internal/infrastructure/postgres"
	handlers "github.com/eshopexpress/backend/internal/interface/http"
	"github.com/eshopexpress/backend/internal/router/modules"
)

type CatalogModuleDeps struct {
	Games     repo.GameRepository
	Platforms repo.PlatformRepository
	Genres    repo.GenreRepository
	Reviews   repo.ReviewRepository
	Service   *application.CatalogService
	Handler   *handlers.CatalogHandler
}

func buildCatalogDeps() CatalogModuleDeps {
	pool := container.GetPGPool()
	games := pginfra.NewGameRepository(pool)
	platforms := pginfra.NewPlatformRepository(pool)
	genres := pginfra.NewGenreRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)

	cfg := container.GetConfig()
	service := application.NewCatalogService(
		games,
		platforms,
		genres,
		reviews,
		container.GetCache(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESGamesIndex,
		container.GetLogger(),
	)

	handler := handlers.NewCatalogHandler(service, container.GetLogger())

	return CatalogModuleDeps{
		Games:     games,
		Platforms: platforms,
		Genres:    genres,
		Reviews:   reviews,
		Service:   service,
		Handler:   handler,
	}
}

type OrderModuleDeps struct {
	Repo    repo.OrderRepository
	Service *application.OrderService
	Handler *handlers.OrderHandler
}

func buildOrderDeps() OrderModuleDeps {
	orders := pginfra.NewOrderRepository(container.GetPGPool())

	service := application.NewOrderService(
		orders,
		container.GetCache(),
		container.GetRabbitPub(),
		container.GetLogger(),
	)

	handler := handlers.NewOrderHandler(service, container.GetLogger())

	return OrderModuleDeps{Repo: orders, Service: service, Handler: handler}
}

type UserModuleDeps struct {
	Repo    repo.UserRepository
	Service *application.UserService
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	users := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewUserService(
		users,
		container.GetCache(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{Repo: users, Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	catalogDeps := buildCatalogDeps()
	r.Add(modules.NewCatalogModule(catalogDeps.Handler))

	orderDeps := buildOrderDeps()
	r.Add(modules.NewOrderModule(orderDeps.Handler))

	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
