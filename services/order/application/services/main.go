package services

import (
	"github.com/ghuser/mealflow/pkg/app"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Order *OrderService
}

// New wires all order application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Order: NewOrderService(a.Stream, a.Logger),
	}
}
