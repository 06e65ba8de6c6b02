package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/mealflow/pkg/errhttp"
	"github.com/ghuser/mealflow/pkg/httpx"
	appsvcs "github.com/ghuser/mealflow/services/restaurant/application/services"
)

// RestaurantResponse is one catalog entry in the listing response.
type RestaurantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Cuisine   string    `json:"cuisine"`
	CreatedAt time.Time `json:"created_at"`
}

// ListRestaurantsHandler handles GET /restaurants requests.
type ListRestaurantsHandler struct {
	svc          *appsvcs.Services
	defaultLimit int
}

// NewListRestaurantsHandler returns a ListRestaurantsHandler with the given
// default result count, used when the request omits ?limit.
func NewListRestaurantsHandler(svc *appsvcs.Services, defaultLimit int) *ListRestaurantsHandler {
	return &ListRestaurantsHandler{svc: svc, defaultLimit: defaultLimit}
}

// Execute lists up to ?limit restaurants from the catalog.
func (h *ListRestaurantsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	restaurants, err := h.svc.Restaurant.List(r.Context(), limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]RestaurantResponse, len(restaurants))
	for i, m := range restaurants {
		out[i] = RestaurantResponse{
			ID:        m.ID,
			Name:      m.Name,
			Cuisine:   m.Cuisine,
			CreatedAt: m.CreatedAt,
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}
