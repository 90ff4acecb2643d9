package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-catalog/catalog-svc/internal/domain"
)

// Each writer below sends exactly one response: the branches return before
// any other write can happen.

func (h *Handler) writeRestaurants(w http.ResponseWriter, r *http.Request, restaurants []domain.Restaurant, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.RestaurantsEnvelope{Restaurants: restaurants})
}

func (h *Handler) writeDishes(w http.ResponseWriter, r *http.Request, dishes []domain.Dish, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.DishesEnvelope{Dishes: dishes})
}

func (h *Handler) writePNG(w http.ResponseWriter, r *http.Request, png []byte, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, domain.MessageResponse{Message: notFound.Message})
		return
	}
	h.Logger.Errorw("query failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", w.Header().Get(requestIDHeader),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, domain.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
