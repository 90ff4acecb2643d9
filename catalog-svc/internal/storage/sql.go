package storage

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"restaurant-catalog/catalog-svc/internal/domain"
	"restaurant-catalog/config"
)

const (
	restaurantColumns = `id, COALESCE(name, ''), COALESCE(cuisine, ''), isVeg, COALESCE(rating, 0), COALESCE(priceForTwo, 0), COALESCE(location, ''), hasOutdoorSeating, isLuxury`
	dishColumns       = `id, COALESCE(name, ''), COALESCE(price, 0), COALESCE(rating, 0), isVeg`
)

// SQLRepository reads restaurants and dishes. Every method runs exactly one
// parameterized statement and returns store errors untouched.
type SQLRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	return &SQLRepository{DB: db, Driver: driver}
}

func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *SQLRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return r.queryRestaurants(ctx, `SELECT `+restaurantColumns+` FROM restaurants`)
}

func (r *SQLRepository) GetRestaurantsByID(ctx context.Context, id domain.IDParam) ([]domain.Restaurant, error) {
	return r.queryRestaurants(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?`, id.BindArg())
}

func (r *SQLRepository) GetRestaurantsByCuisine(ctx context.Context, cuisine string) ([]domain.Restaurant, error) {
	return r.queryRestaurants(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE cuisine = ?`, cuisine)
}

func (r *SQLRepository) FilterRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	args := append(r.flagArgs(filter.IsVeg), r.flagArgs(filter.HasOutdoorSeating)...)
	args = append(args, r.flagArgs(filter.IsLuxury)...)
	return r.queryRestaurants(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE isVeg IN (?, ?) AND hasOutdoorSeating IN (?, ?) AND isLuxury IN (?, ?)`, args...)
}

func (r *SQLRepository) ListRestaurantsByRating(ctx context.Context) ([]domain.Restaurant, error) {
	return r.queryRestaurants(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY rating DESC`)
}

func (r *SQLRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	return r.queryDishes(ctx, `SELECT `+dishColumns+` FROM dishes`)
}

func (r *SQLRepository) GetDishesByID(ctx context.Context, id domain.IDParam) ([]domain.Dish, error) {
	return r.queryDishes(ctx, `SELECT `+dishColumns+` FROM dishes WHERE id = ?`, id.BindArg())
}

func (r *SQLRepository) FilterDishes(ctx context.Context, isVeg domain.FlagParam) ([]domain.Dish, error) {
	return r.queryDishes(ctx, `SELECT `+dishColumns+` FROM dishes WHERE isVeg IN (?, ?)`, r.flagArgs(isVeg)...)
}

func (r *SQLRepository) ListDishesByPrice(ctx context.Context) ([]domain.Dish, error) {
	return r.queryDishes(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY price ASC`)
}

func (r *SQLRepository) queryRestaurants(ctx context.Context, query string, args ...interface{}) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Cuisine, &rest.IsVeg, &rest.Rating, &rest.PriceForTwo, &rest.Location, &rest.HasOutdoorSeating, &rest.IsLuxury); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *SQLRepository) queryDishes(ctx context.Context, query string, args ...interface{}) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Rating, &dish.IsVeg); err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dishes, nil
}

// flagArgs binds an unrecognised flag as NULL on postgres, where boolean
// columns reject arbitrary text. Either way the predicate matches nothing.
func (r *SQLRepository) flagArgs(p domain.FlagParam) []interface{} {
	if r.Driver == config.DriverPostgres && p.Present && !p.Parsed {
		return []interface{}{nil, nil}
	}
	return p.BindArgs()
}

func (r *SQLRepository) rebind(query string) string {
	if r.Driver != config.DriverPostgres {
		return query
	}
	return Rebind(query)
}

// Rebind rewrites `?` placeholders to postgres `$n` form.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
