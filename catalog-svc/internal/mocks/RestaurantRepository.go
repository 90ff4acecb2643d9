package mocks

import (
	context "context"

	domain "restaurant-catalog/catalog-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// RestaurantRepository is a mock type for the RestaurantRepository type
type RestaurantRepository struct {
	mock.Mock
}

func (_m *RestaurantRepository) restaurants(ret mock.Arguments) ([]domain.Restaurant, error) {
	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

// ListRestaurants provides a mock function with given fields: ctx
func (_m *RestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return _m.restaurants(_m.Called(ctx))
}

// GetRestaurantsByID provides a mock function with given fields: ctx, id
func (_m *RestaurantRepository) GetRestaurantsByID(ctx context.Context, id domain.IDParam) ([]domain.Restaurant, error) {
	return _m.restaurants(_m.Called(ctx, id))
}

// GetRestaurantsByCuisine provides a mock function with given fields: ctx, cuisine
func (_m *RestaurantRepository) GetRestaurantsByCuisine(ctx context.Context, cuisine string) ([]domain.Restaurant, error) {
	return _m.restaurants(_m.Called(ctx, cuisine))
}

// FilterRestaurants provides a mock function with given fields: ctx, filter
func (_m *RestaurantRepository) FilterRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	return _m.restaurants(_m.Called(ctx, filter))
}

// ListRestaurantsByRating provides a mock function with given fields: ctx
func (_m *RestaurantRepository) ListRestaurantsByRating(ctx context.Context) ([]domain.Restaurant, error) {
	return _m.restaurants(_m.Called(ctx))
}

// NewRestaurantRepository creates a new instance of RestaurantRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRestaurantRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
