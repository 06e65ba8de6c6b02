package services

import (
	"github.com/ghuser/mealflow/pkg/app"
	"github.com/ghuser/mealflow/pkg/cache"
	"github.com/ghuser/mealflow/services/restaurant/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Restaurant *RestaurantService
}

// New wires all restaurant application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewRestaurantRepository(a.Db)
	catalogCache := cache.NewCatalogCache(a.Redis)
	return &Services{
		Restaurant: NewRestaurantService(repo, catalogCache, a.Logger),
	}
}
