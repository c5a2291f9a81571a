// Package catalog translates restaurant and dish lookups into parameterized
// SELECT statements and runs them against the shared store.
//
// Every operation issues exactly one statement. An empty collection or a missing
// row is reported as ErrNotFound; any other error comes from the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edgeflare/tastebud/pkg/metrics"
	"github.com/edgeflare/tastebud/pkg/store"
)

var ErrNotFound = errors.New("catalog: not found")

type Catalog struct {
	db store.DB
}

func New(db store.DB) *Catalog {
	return &Catalog{db: db}
}

// Restaurants returns every restaurant ordered by id.
func (c *Catalog) Restaurants(ctx context.Context) ([]Restaurant, error) {
	q := newSelect(restaurantsTable, restaurantColumns...).
		orderBy("id", false)
	return queryMany(ctx, c.db, "restaurants", q, (*Restaurant).fields)
}

func (c *Catalog) RestaurantByID(ctx context.Context, id int64) (*Restaurant, error) {
	q := newSelect(restaurantsTable, restaurantColumns...).
		whereEq("id", id)
	return queryOne(ctx, c.db, "restaurant_by_id", q, (*Restaurant).fields)
}

// RestaurantsByCuisine matches cuisine exactly, case-sensitive.
func (c *Catalog) RestaurantsByCuisine(ctx context.Context, cuisine string) ([]Restaurant, error) {
	q := newSelect(restaurantsTable, restaurantColumns...).
		whereEq("cuisine", cuisine).
		orderBy("id", false)
	return queryMany(ctx, c.db, "restaurants_by_cuisine", q, (*Restaurant).fields)
}

func (c *Catalog) FilterRestaurants(ctx context.Context, f RestaurantFilter) ([]Restaurant, error) {
	q := newSelect(restaurantsTable, restaurantColumns...).
		whereEq("isVeg", f.IsVeg).
		whereEq("hasOutdoorSeating", f.HasOutdoorSeating).
		whereEq("isLuxury", f.IsLuxury).
		orderBy("id", false)
	return queryMany(ctx, c.db, "filter_restaurants", q, (*Restaurant).fields)
}

// RestaurantsByRating returns restaurants with the highest rating first; ties keep id order.
func (c *Catalog) RestaurantsByRating(ctx context.Context) ([]Restaurant, error) {
	q := newSelect(restaurantsTable, restaurantColumns...).
		orderBy("rating", true).
		orderBy("id", false)
	return queryMany(ctx, c.db, "restaurants_by_rating", q, (*Restaurant).fields)
}

func (c *Catalog) Dishes(ctx context.Context) ([]Dish, error) {
	q := newSelect(dishesTable, dishColumns...).
		orderBy("id", false)
	return queryMany(ctx, c.db, "dishes", q, (*Dish).fields)
}

func (c *Catalog) DishByID(ctx context.Context, id int64) (*Dish, error) {
	q := newSelect(dishesTable, dishColumns...).
		whereEq("id", id)
	return queryOne(ctx, c.db, "dish_by_id", q, (*Dish).fields)
}

func (c *Catalog) FilterDishes(ctx context.Context, f DishFilter) ([]Dish, error) {
	q := newSelect(dishesTable, dishColumns...).
		whereEq("isVeg", f.IsVeg).
		orderBy("id", false)
	return queryMany(ctx, c.db, "filter_dishes", q, (*Dish).fields)
}

// DishesByPrice returns the cheapest dishes first; ties keep id order.
func (c *Catalog) DishesByPrice(ctx context.Context) ([]Dish, error) {
	q := newSelect(dishesTable, dishColumns...).
		orderBy("price", false).
		orderBy("id", false)
	return queryMany(ctx, c.db, "dishes_by_price", q, (*Dish).fields)
}

// Ping reports whether the store is reachable.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.Ping(ctx)
}

func queryMany[T any](ctx context.Context, db store.DB, op string, q *selectQuery, fields func(*T) []any) (result []T, err error) {
	defer observe(op, time.Now(), &err)

	sql, args := q.build(db.Dialect())
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result = make([]T, 0)
	for rows.Next() {
		var item T
		if err := rows.Scan(fields(&item)...); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(result) == 0 {
		return result, ErrNotFound
	}
	return result, nil
}

func queryOne[T any](ctx context.Context, db store.DB, op string, q *selectQuery, fields func(*T) []any) (*T, error) {
	items, err := queryMany(ctx, db, op, q, fields)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func observe(op string, start time.Time, err *error) {
	metrics.CatalogQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case errors.Is(*err, ErrNotFound):
		outcome = "not_found"
	case *err != nil:
		outcome = "error"
	}
	metrics.CatalogQueries.WithLabelValues(op, outcome).Inc()
}
