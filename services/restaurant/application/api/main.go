package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/mealflow/pkg/app"
	"github.com/ghuser/mealflow/services/restaurant/application/handlers"
	appsvcs "github.com/ghuser/mealflow/services/restaurant/application/services"
)

// RestaurantRoutes registers catalog endpoints on the provided chi router.
func RestaurantRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", handlers.NewListRestaurantsHandler(svcs, a.Config.CatalogDefaultLimit).Execute)
		})
	})
}
