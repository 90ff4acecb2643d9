package mocks

import (
	context "context"

	domain "restaurant-catalog/catalog-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// DishRepository is a mock type for the DishRepository type
type DishRepository struct {
	mock.Mock
}

func (_m *DishRepository) dishes(ret mock.Arguments) ([]domain.Dish, error) {
	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	return r0, ret.Error(1)
}

// ListDishes provides a mock function with given fields: ctx
func (_m *DishRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	return _m.dishes(_m.Called(ctx))
}

// GetDishesByID provides a mock function with given fields: ctx, id
func (_m *DishRepository) GetDishesByID(ctx context.Context, id domain.IDParam) ([]domain.Dish, error) {
	return _m.dishes(_m.Called(ctx, id))
}

// FilterDishes provides a mock function with given fields: ctx, isVeg
func (_m *DishRepository) FilterDishes(ctx context.Context, isVeg domain.FlagParam) ([]domain.Dish, error) {
	return _m.dishes(_m.Called(ctx, isVeg))
}

// ListDishesByPrice provides a mock function with given fields: ctx
func (_m *DishRepository) ListDishesByPrice(ctx context.Context) ([]domain.Dish, error) {
	return _m.dishes(_m.Called(ctx))
}

// NewDishRepository creates a new instance of DishRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewDishRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *DishRepository {
	m := &DishRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
