package service

import (
	"context"

	"restaurant-catalog/catalog-svc/internal/domain"
	"restaurant-catalog/catalog-svc/internal/storage"
)

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurantsByID(ctx context.Context, id domain.IDParam) ([]domain.Restaurant, error)
	GetRestaurantsByCuisine(ctx context.Context, cuisine string) ([]domain.Restaurant, error)
	FilterRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	ListRestaurantsByRating(ctx context.Context) ([]domain.Restaurant, error)
}

type DishRepository interface {
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	GetDishesByID(ctx context.Context, id domain.IDParam) ([]domain.Dish, error)
	FilterDishes(ctx context.Context, isVeg domain.FlagParam) ([]domain.Dish, error)
	ListDishesByPrice(ctx context.Context) ([]domain.Dish, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type EventPublisher interface {
	PublishQuery(ctx context.Context, event domain.QueryEvent) error
}

type RestaurantServiceInterface interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	ByID(ctx context.Context, id domain.IDParam) ([]domain.Restaurant, error)
	ByCuisine(ctx context.Context, cuisine string) ([]domain.Restaurant, error)
	Filter(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	SortedByRating(ctx context.Context) ([]domain.Restaurant, error)
	ShareCode(ctx context.Context, id domain.IDParam) ([]byte, error)
}

type DishServiceInterface interface {
	List(ctx context.Context) ([]domain.Dish, error)
	ByID(ctx context.Context, id domain.IDParam) ([]domain.Dish, error)
	Filter(ctx context.Context, isVeg domain.FlagParam) ([]domain.Dish, error)
	SortedByPrice(ctx context.Context) ([]domain.Dish, error)
	ShareCode(ctx context.Context, id domain.IDParam) ([]byte, error)
}

var (
	_ RestaurantRepository = (*storage.SQLRepository)(nil)
	_ DishRepository       = (*storage.SQLRepository)(nil)
	_ Cache                = (*storage.RedisCache)(nil)
	_ EventPublisher       = (*storage.KafkaPublisher)(nil)
)
