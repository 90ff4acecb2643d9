package httpapi

import (
	"context"
	"net/http"
	"time"

	"restaurant-catalog/catalog-svc/internal/domain"
	"restaurant-catalog/catalog-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Dishes      service.DishServiceInterface
	Store       Pinger
	Logger      *zap.SugaredLogger
}

func NewHandler(restSvc service.RestaurantServiceInterface, dishSvc service.DishServiceInterface, store Pinger, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		Restaurants: restSvc,
		Dishes:      dishSvc,
		Store:       store,
		Logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/details/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/restaurants/details/{id}/qrcode", h.getRestaurantQRCode).Methods("GET")
	r.HandleFunc("/restaurants/cuisine/{cuisine}", h.getRestaurantsByCuisine).Methods("GET")
	r.HandleFunc("/restaurants/filter", h.filterRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/sorted-by-rating", h.getRestaurantsByRating).Methods("GET")

	r.HandleFunc("/dishes", h.getDishes).Methods("GET")
	r.HandleFunc("/dishes/details/{id}", h.getDish).Methods("GET")
	r.HandleFunc("/dishes/details/{id}/qrcode", h.getDishQRCode).Methods("GET")
	r.HandleFunc("/dishes/filter", h.filterDishes).Methods("GET")
	r.HandleFunc("/dishes/sorted-by-price", h.getDishesByPrice).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "catalog-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context())
	h.writeRestaurants(w, r, restaurants, err)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id := domain.ParseID(mux.Vars(r)["id"])
	restaurants, err := h.Restaurants.ByID(r.Context(), id)
	h.writeRestaurants(w, r, restaurants, err)
}

func (h *Handler) getRestaurantsByCuisine(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.ByCuisine(r.Context(), mux.Vars(r)["cuisine"])
	h.writeRestaurants(w, r, restaurants, err)
}

func (h *Handler) filterRestaurants(w http.ResponseWriter, r *http.Request) {
	filter := domain.RestaurantFilter{
		IsVeg:             flagParam(r, "isVeg"),
		HasOutdoorSeating: flagParam(r, "hasOutdoorSeating"),
		IsLuxury:          flagParam(r, "isLuxury"),
	}
	restaurants, err := h.Restaurants.Filter(r.Context(), filter)
	h.writeRestaurants(w, r, restaurants, err)
}

func (h *Handler) getRestaurantsByRating(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.SortedByRating(r.Context())
	h.writeRestaurants(w, r, restaurants, err)
}

func (h *Handler) getRestaurantQRCode(w http.ResponseWriter, r *http.Request) {
	id := domain.ParseID(mux.Vars(r)["id"])
	qr, err := h.Restaurants.ShareCode(r.Context(), id)
	h.writePNG(w, r, qr, err)
}

func (h *Handler) getDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.List(r.Context())
	h.writeDishes(w, r, dishes, err)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id := domain.ParseID(mux.Vars(r)["id"])
	dishes, err := h.Dishes.ByID(r.Context(), id)
	h.writeDishes(w, r, dishes, err)
}

func (h *Handler) filterDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.Filter(r.Context(), flagParam(r, "isVeg"))
	h.writeDishes(w, r, dishes, err)
}

func (h *Handler) getDishesByPrice(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.SortedByPrice(r.Context())
	h.writeDishes(w, r, dishes, err)
}

func (h *Handler) getDishQRCode(w http.ResponseWriter, r *http.Request) {
	id := domain.ParseID(mux.Vars(r)["id"])
	qr, err := h.Dishes.ShareCode(r.Context(), id)
	h.writePNG(w, r, qr, err)
}

func flagParam(r *http.Request, name string) domain.FlagParam {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return domain.ParseFlag("", false)
	}
	return domain.ParseFlag(values[0], true)
}
