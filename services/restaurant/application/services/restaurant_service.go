package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/mealflow/pkg/cache"
	"github.com/ghuser/mealflow/pkg/logger"
	restaurantdomain "github.com/ghuser/mealflow/services/restaurant/domain"
	"github.com/ghuser/mealflow/services/restaurant/domain/models"
	"github.com/ghuser/mealflow/services/restaurant/domain/repositories"
)

// MaxListLimit caps how many catalog entries one request may ask for.
const MaxListLimit = 100

// RestaurantService serves the bounded catalog listing.
// Reads are served from the Redis listing cache when available.
type RestaurantService struct {
	repo  repositories.RestaurantRepository
	cache *pkgcache.CatalogCache
	log   logger.Logger
}

// NewRestaurantService returns a RestaurantService wired with the given repository and cache.
func NewRestaurantService(repo repositories.RestaurantRepository, catalogCache *pkgcache.CatalogCache, log logger.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, cache: catalogCache, log: log}
}

// List returns up to limit restaurants using a read-through cache pattern:
//  1. Check the Redis listing cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *RestaurantService) List(ctx context.Context, limit int) ([]*models.Restaurant, error) {
	if limit < 1 || limit > MaxListLimit {
		return nil, fmt.Errorf("%w: %d (must be 1-%d)", restaurantdomain.ErrInvalidLimit, limit, MaxListLimit)
	}

	if s.cache != nil {
		if cached, err := s.cache.GetList(ctx, limit); err == nil {
			return cachedToModels(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "catalog cache read failed, falling through", "error", err)
		}
	}

	restaurants, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	s.log.DebugContext(ctx, "found restaurants", "limit", limit, "count", len(restaurants))

	if s.cache != nil {
		go func() {
			_ = s.cache.SetList(context.Background(), limit, modelsToCached(restaurants))
		}()
	}

	return restaurants, nil
}

func cachedToModels(cached []pkgcache.CachedRestaurant) []*models.Restaurant {
	out := make([]*models.Restaurant, len(cached))
	for i, c := range cached {
		out[i] = &models.Restaurant{
			ID:        c.ID,
			Name:      c.Name,
			Cuisine:   c.Cuisine,
			CreatedAt: c.CreatedAt,
		}
	}
	return out
}

func modelsToCached(restaurants []*models.Restaurant) []pkgcache.CachedRestaurant {
	out := make([]pkgcache.CachedRestaurant, len(restaurants))
	for i, m := range restaurants {
		out[i] = pkgcache.CachedRestaurant{
			ID:        m.ID,
			Name:      m.Name,
			Cuisine:   m.Cuisine,
			CreatedAt: m.CreatedAt,
		}
	}
	return out
}
