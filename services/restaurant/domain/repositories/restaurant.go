package repositories

import (
	"context"

	"github.com/ghuser/mealflow/services/restaurant/domain/models"
)

// RestaurantRepository is the persistence interface for the catalog.
// The domain layer owns this interface; infrastructure implements it.
type RestaurantRepository interface {
	// List returns up to limit catalog entries in insertion order.
	List(ctx context.Context, limit int) ([]*models.Restaurant, error)
}
