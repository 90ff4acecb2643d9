package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-catalog/catalog-svc/internal/domain"
	"restaurant-catalog/catalog-svc/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options carries the optional collaborators shared by the query services.
// Any field may be left nil.
type Options struct {
	Cache  Cache
	Events EventPublisher
	QR     QRGenerator
	Logger *zap.SugaredLogger
}

func (o Options) log() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger
}

type query struct {
	resource  string
	operation string
	cacheKey  string
	params    map[string]string
	// notFound qualifies the 404 message, e.g. "id 7".
	notFound string
}

// run loads rows through the cache, records the outcome and turns an empty
// result into a NotFoundError.
func run[T any](ctx context.Context, opts Options, q query, load func(context.Context) ([]T, error)) ([]T, error) {
	rows, err := readThrough(ctx, opts, q.cacheKey, load)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(q.resource, q.operation, "error").Inc()
		return nil, err
	}

	outcome := domain.OutcomeFound
	if len(rows) == 0 {
		outcome = domain.OutcomeNotFound
	}
	metrics.QueriesTotal.WithLabelValues(q.resource, q.operation, outcome).Inc()
	publish(ctx, opts, domain.QueryEvent{
		ID:          uuid.NewString(),
		Resource:    q.resource,
		Operation:   q.operation,
		Params:      q.params,
		ResultCount: len(rows),
		Outcome:     outcome,
		Timestamp:   time.Now().UTC(),
	})

	if len(rows) == 0 {
		return nil, domain.NewNotFound(q.resource, q.notFound)
	}
	return rows, nil
}

func readThrough[T any](ctx context.Context, opts Options, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if opts.Cache == nil {
		return load(ctx)
	}

	cached, ok, err := opts.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		opts.log().Warnw("cache lookup failed", "key", key, "error", err)
	case ok:
		var rows []T
		if err := json.Unmarshal(cached, &rows); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return rows, nil
		}
		metrics.CacheLookups.WithLabelValues("error").Inc()
		opts.log().Warnw("discarding undecodable cache entry", "key", key)
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(rows); err == nil {
		if err := opts.Cache.Set(ctx, key, payload); err != nil {
			opts.log().Warnw("cache store failed", "key", key, "error", err)
		}
	}
	return rows, nil
}

func publish(ctx context.Context, opts Options, event domain.QueryEvent) {
	if opts.Events == nil {
		return
	}
	if err := opts.Events.PublishQuery(ctx, event); err != nil {
		opts.log().Warnw("failed to publish query event",
			"resource", event.Resource, "operation", event.Operation, "error", err)
	}
}

func shareCode(opts Options, path string) ([]byte, error) {
	if opts.QR == nil {
		return nil, fmt.Errorf("share codes are not configured")
	}
	return opts.QR.Generate(path)
}

type RestaurantService struct {
	repo RestaurantRepository
	opts Options
}

func NewRestaurantService(repo RestaurantRepository, opts Options) *RestaurantService {
	return &RestaurantService{repo: repo, opts: opts}
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceRestaurants,
		operation: "list",
		cacheKey:  "restaurants:list",
	}, s.repo.ListRestaurants)
}

func (s *RestaurantService) ByID(ctx context.Context, id domain.IDParam) ([]domain.Restaurant, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceRestaurants,
		operation: "by_id",
		cacheKey:  fmt.Sprintf("restaurants:id:%v", id.BindArg()),
		params:    map[string]string{"id": id.Raw},
		notFound:  "id " + id.Raw,
	}, func(ctx context.Context) ([]domain.Restaurant, error) {
		return s.repo.GetRestaurantsByID(ctx, id)
	})
}

func (s *RestaurantService) ByCuisine(ctx context.Context, cuisine string) ([]domain.Restaurant, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceRestaurants,
		operation: "by_cuisine",
		cacheKey:  "restaurants:cuisine:" + cuisine,
		params:    map[string]string{"cuisine": cuisine},
		notFound:  "cuisine " + cuisine,
	}, func(ctx context.Context) ([]domain.Restaurant, error) {
		return s.repo.GetRestaurantsByCuisine(ctx, cuisine)
	})
}

func (s *RestaurantService) Filter(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceRestaurants,
		operation: "filter",
		cacheKey: fmt.Sprintf("restaurants:filter:%v:%v:%v",
			filter.IsVeg.BindArgs(), filter.HasOutdoorSeating.BindArgs(), filter.IsLuxury.BindArgs()),
		params: map[string]string{
			"isVeg":             filter.IsVeg.Raw,
			"hasOutdoorSeating": filter.HasOutdoorSeating.Raw,
			"isLuxury":          filter.IsLuxury.Raw,
		},
	}, func(ctx context.Context) ([]domain.Restaurant, error) {
		return s.repo.FilterRestaurants(ctx, filter)
	})
}

func (s *RestaurantService) SortedByRating(ctx context.Context) ([]domain.Restaurant, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceRestaurants,
		operation: "sorted_by_rating",
		cacheKey:  "restaurants:sorted-by-rating",
	}, s.repo.ListRestaurantsByRating)
}

func (s *RestaurantService) ShareCode(ctx context.Context, id domain.IDParam) ([]byte, error) {
	if _, err := s.ByID(ctx, id); err != nil {
		return nil, err
	}
	return shareCode(s.opts, "/restaurants/details/"+id.Raw)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)

type DishService struct {
	repo DishRepository
	opts Options
}

func NewDishService(repo DishRepository, opts Options) *DishService {
	return &DishService{repo: repo, opts: opts}
}

func (s *DishService) List(ctx context.Context) ([]domain.Dish, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceDishes,
		operation: "list",
		cacheKey:  "dishes:list",
	}, s.repo.ListDishes)
}

func (s *DishService) ByID(ctx context.Context, id domain.IDParam) ([]domain.Dish, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceDishes,
		operation: "by_id",
		cacheKey:  fmt.Sprintf("dishes:id:%v", id.BindArg()),
		params:    map[string]string{"id": id.Raw},
		notFound:  "id " + id.Raw,
	}, func(ctx context.Context) ([]domain.Dish, error) {
		return s.repo.GetDishesByID(ctx, id)
	})
}

func (s *DishService) Filter(ctx context.Context, isVeg domain.FlagParam) ([]domain.Dish, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceDishes,
		operation: "filter",
		cacheKey:  fmt.Sprintf("dishes:filter:%v", isVeg.BindArgs()),
		params:    map[string]string{"isVeg": isVeg.Raw},
	}, func(ctx context.Context) ([]domain.Dish, error) {
		return s.repo.FilterDishes(ctx, isVeg)
	})
}

func (s *DishService) SortedByPrice(ctx context.Context) ([]domain.Dish, error) {
	return run(ctx, s.opts, query{
		resource:  domain.ResourceDishes,
		operation: "sorted_by_price",
		cacheKey:  "dishes:sorted-by-price",
	}, s.repo.ListDishesByPrice)
}

func (s *DishService) ShareCode(ctx context.Context, id domain.IDParam) ([]byte, error) {
	if _, err := s.ByID(ctx, id); err != nil {
		return nil, err
	}
	return shareCode(s.opts, "/dishes/details/"+id.Raw)
}

var _ DishServiceInterface = (*DishService)(nil)
