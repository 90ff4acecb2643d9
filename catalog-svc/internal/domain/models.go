package domain

import "time"

type Restaurant struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Cuisine           string  `json:"cuisine"`
	IsVeg             Flag    `json:"isVeg"`
	Rating            float64 `json:"rating"`
	PriceForTwo       float64 `json:"priceForTwo"`
	Location          string  `json:"location"`
	HasOutdoorSeating Flag    `json:"hasOutdoorSeating"`
	IsLuxury          Flag    `json:"isLuxury"`
}

type Dish struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
	IsVeg  Flag    `json:"isVeg"`
}

type RestaurantsEnvelope struct {
	Restaurants []Restaurant `json:"restaurants"`
}

type DishesEnvelope struct {
	Dishes []Dish `json:"dishes"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RestaurantFilter holds the three flags of /restaurants/filter. All three
// take part in the predicate.
type RestaurantFilter struct {
	IsVeg             FlagParam
	HasOutdoorSeating FlagParam
	IsLuxury          FlagParam
}

// QueryEvent describes one answered query.
type QueryEvent struct {
	ID          string            `json:"id"`
	Resource    string            `json:"resource"`
	Operation   string            `json:"operation"`
	Params      map[string]string `json:"params,omitempty"`
	ResultCount int               `json:"result_count"`
	Outcome     string            `json:"outcome"`
	Timestamp   time.Time         `json:"timestamp"`
}

const (
	ResourceRestaurants = "restaurants"
	ResourceDishes      = "dishes"

	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)
