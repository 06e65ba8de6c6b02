package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/mealflow/pkg/app"
	"github.com/ghuser/mealflow/services/order/application/handlers"
	appsvcs "github.com/ghuser/mealflow/services/order/application/services"
)

// OrderRoutes registers order endpoints on the provided chi router.
func OrderRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPlaceOrderHandler(svcs).Execute)
		})
	})
}
