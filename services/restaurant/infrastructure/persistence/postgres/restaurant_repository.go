package postgres

import (
	"context"
	"fmt"

	"github.com/ghuser/mealflow/pkg/database"
	"github.com/ghuser/mealflow/services/restaurant/domain/models"
)

// RestaurantRepository implements repositories.RestaurantRepository against PostgreSQL.
type RestaurantRepository struct {
	db *database.Database
}

// NewRestaurantRepository returns a RestaurantRepository backed by the given pool.
func NewRestaurantRepository(db *database.Database) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// List returns up to limit restaurants in insertion order.
func (r *RestaurantRepository) List(ctx context.Context, limit int) ([]*models.Restaurant, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, name, cuisine, created_at FROM restaurants ORDER BY created_at, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var restaurants []*models.Restaurant
	for rows.Next() {
		var m models.Restaurant
		if err := rows.Scan(&m.ID, &m.Name, &m.Cuisine, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return restaurants, nil
}
