package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"restaurant-catalog/catalog-svc/internal/domain"
	"restaurant-catalog/catalog-svc/internal/service"
	"restaurant-catalog/config"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
CREATE TABLE restaurants (
	id INTEGER PRIMARY KEY,
	name TEXT,
	cuisine TEXT,
	isVeg TEXT,
	rating REAL,
	priceForTwo INTEGER,
	location TEXT,
	hasOutdoorSeating TEXT,
	isLuxury TEXT
);
CREATE TABLE dishes (
	id INTEGER PRIMARY KEY,
	name TEXT,
	price INTEGER,
	rating REAL,
	isVeg INTEGER
);`

const seed = `
INSERT INTO restaurants (id, name, cuisine, isVeg, rating, priceForTwo, location, hasOutdoorSeating, isLuxury) VALUES
	(1, 'Spice Kitchen', 'Indian', 'true', 4.5, 1500, 'New Delhi', 'true', 'false'),
	(2, 'Olive Bistro', 'Italian', 'false', 4.1, 2000, 'Mumbai', 'false', 'true'),
	(3, 'Green Leaf', 'Indian', 'true', 4.8, 900, 'Bengaluru', 'false', 'false'),
	(4, 'Sushi Corner', 'Japanese', 'false', 3.9, 3000, 'Pune', 'true', 'true');
INSERT INTO dishes (id, name, price, rating, isVeg) VALUES
	(1, 'Paneer Tikka', 250, 4.5, 1),
	(2, 'Chicken Biryani', 320, 4.7, 0),
	(3, 'Masala Dosa', 90, 4.2, 1),
	(4, 'Fish Curry', 280, 4.0, 0);`

func newTestDB(t *testing.T, statements ...string) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.sqlite")
	db, err := sql.Open(config.DriverSQLite, "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

// countingWriter counts WriteHeader calls so tests can assert a single response.
type countingWriter struct {
	*httptest.ResponseRecorder
	headerWrites int
}

func (w *countingWriter) WriteHeader(code int) {
	w.headerWrites++
	w.ResponseRecorder.WriteHeader(code)
}

func get(t *testing.T, h http.Handler, target string) *countingWriter {
	t.Helper()
	w := &countingWriter{ResponseRecorder: httptest.NewRecorder()}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode(t *testing.T, w *countingWriter, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

var queryRoutes = []string{
	"/restaurants",
	"/restaurants/details/1",
	"/restaurants/cuisine/Indian",
	"/restaurants/filter?isVeg=true&hasOutdoorSeating=false&isLuxury=false",
	"/restaurants/sorted-by-rating",
	"/dishes",
	"/dishes/details/1",
	"/dishes/filter?isVeg=true",
	"/dishes/sorted-by-price",
}

func TestRestaurantEndpoints(t *testing.T) {
	h := newHandler(newTestDB(t, schema, seed), config.DriverSQLite, service.Options{})

	t.Run("list", func(t *testing.T) {
		w := get(t, h, "/restaurants")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.RestaurantsEnvelope
		decode(t, w, &body)
		assert.Len(t, body.Restaurants, 4)
	})

	t.Run("details", func(t *testing.T) {
		w := get(t, h, "/restaurants/details/2")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.RestaurantsEnvelope
		decode(t, w, &body)
		require.Len(t, body.Restaurants, 1)
		assert.Equal(t, int64(2), body.Restaurants[0].ID)
		assert.Equal(t, "Olive Bistro", body.Restaurants[0].Name)
		assert.True(t, bool(body.Restaurants[0].IsLuxury))
	})

	t.Run("details carries every column in store order", func(t *testing.T) {
		w := get(t, h, "/restaurants/details/1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"restaurants":[{"id":1,"name":"Spice Kitchen","cuisine":"Indian","isVeg":true,"rating":4.5,"priceForTwo":1500,"location":"New Delhi","hasOutdoorSeating":true,"isLuxury":false}]}`, w.Body.String())
		assert.Regexp(t, `"id".*"name".*"cuisine".*"isVeg".*"rating".*"priceForTwo".*"location".*"hasOutdoorSeating".*"isLuxury"`, w.Body.String())
	})

	t.Run("details not found", func(t *testing.T) {
		for _, id := range []string{"99", "abc"} {
			w := get(t, h, "/restaurants/details/"+id)
			require.Equal(t, http.StatusNotFound, w.Code)

			var body domain.MessageResponse
			decode(t, w, &body)
			assert.Equal(t, "No restaurants found for id "+id, body.Message)
		}
	})

	t.Run("cuisine", func(t *testing.T) {
		w := get(t, h, "/restaurants/cuisine/Indian")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.RestaurantsEnvelope
		decode(t, w, &body)
		require.Len(t, body.Restaurants, 2)
		for _, r := range body.Restaurants {
			assert.Equal(t, "Indian", r.Cuisine)
		}

		w = get(t, h, "/restaurants/cuisine/Thai")
		require.Equal(t, http.StatusNotFound, w.Code)
		var msg domain.MessageResponse
		decode(t, w, &msg)
		assert.Equal(t, "No restaurants found for cuisine Thai", msg.Message)
	})

	t.Run("filter matches all three flags", func(t *testing.T) {
		tests := []struct {
			query  string
			wantID int64
		}{
			{query: "isVeg=true&hasOutdoorSeating=false&isLuxury=false", wantID: 3},
			{query: "isVeg=true&hasOutdoorSeating=true&isLuxury=false", wantID: 1},
			{query: "isVeg=false&hasOutdoorSeating=false&isLuxury=true", wantID: 2},
			{query: "isVeg=false&hasOutdoorSeating=true&isLuxury=true", wantID: 4},
		}

		for _, tc := range tests {
			w := get(t, h, "/restaurants/filter?"+tc.query)
			require.Equal(t, http.StatusOK, w.Code, tc.query)

			var body domain.RestaurantsEnvelope
			decode(t, w, &body)
			require.Len(t, body.Restaurants, 1, tc.query)
			assert.Equal(t, tc.wantID, body.Restaurants[0].ID, tc.query)
		}

		w := get(t, h, "/restaurants/filter?isVeg=false&hasOutdoorSeating=false&isLuxury=false")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("filter with missing flag selects nothing", func(t *testing.T) {
		w := get(t, h, "/restaurants/filter?isVeg=true")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 1, w.headerWrites)
	})

	t.Run("sorted by rating", func(t *testing.T) {
		w := get(t, h, "/restaurants/sorted-by-rating")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.RestaurantsEnvelope
		decode(t, w, &body)
		require.Len(t, body.Restaurants, 4)
		assert.True(t, sort.SliceIsSorted(body.Restaurants, func(i, j int) bool {
			return body.Restaurants[i].Rating > body.Restaurants[j].Rating
		}))
		assert.Equal(t, 4.8, body.Restaurants[0].Rating)
	})
}

func TestDishEndpoints(t *testing.T) {
	h := newHandler(newTestDB(t, schema, seed), config.DriverSQLite, service.Options{})

	t.Run("details", func(t *testing.T) {
		w := get(t, h, "/dishes/details/3")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.DishesEnvelope
		decode(t, w, &body)
		require.Len(t, body.Dishes, 1)
		assert.Equal(t, int64(3), body.Dishes[0].ID)
		assert.Equal(t, 90.0, body.Dishes[0].Price)
		assert.Equal(t, 4.2, body.Dishes[0].Rating)

		w = get(t, h, "/dishes/details/1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"dishes":[{"id":1,"name":"Paneer Tikka","price":250,"rating":4.5,"isVeg":true}]}`, w.Body.String())

		w = get(t, h, "/dishes/details/42")
		require.Equal(t, http.StatusNotFound, w.Code)
		var msg domain.MessageResponse
		decode(t, w, &msg)
		assert.Equal(t, "No dishes found for id 42", msg.Message)
	})

	t.Run("filter", func(t *testing.T) {
		for _, tc := range []struct {
			query string
			want  bool
		}{
			{query: "true", want: true},
			{query: "false", want: false},
			{query: "1", want: true},
		} {
			w := get(t, h, "/dishes/filter?isVeg="+tc.query)
			require.Equal(t, http.StatusOK, w.Code)

			var body domain.DishesEnvelope
			decode(t, w, &body)
			require.Len(t, body.Dishes, 2)
			for _, d := range body.Dishes {
				assert.Equal(t, tc.want, bool(d.IsVeg))
			}
		}

		w := get(t, h, "/dishes/filter?isVeg=maybe")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sorted by price", func(t *testing.T) {
		w := get(t, h, "/dishes/sorted-by-price")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.DishesEnvelope
		decode(t, w, &body)
		require.Len(t, body.Dishes, 4)
		assert.True(t, sort.SliceIsSorted(body.Dishes, func(i, j int) bool {
			return body.Dishes[i].Price < body.Dishes[j].Price
		}))
	})
}

func TestEmptyStoreRespondsOnce(t *testing.T) {
	h := newHandler(newTestDB(t, schema), config.DriverSQLite, service.Options{})

	for _, route := range queryRoutes {
		t.Run(route, func(t *testing.T) {
			w := get(t, h, route)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, 1, w.headerWrites)

			var body domain.MessageResponse
			decode(t, w, &body)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestCorruptStoreReturnsServerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.sqlite")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a sqlite database "), 256), 0o600))

	db, err := sql.Open(config.DriverSQLite, "file:"+path+"?mode=ro")
	require.NoError(t, err)
	defer db.Close()

	h := newHandler(db, config.DriverSQLite, service.Options{})
	for _, route := range queryRoutes {
		t.Run(route, func(t *testing.T) {
			w := get(t, h, route)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, 1, w.headerWrites)

			var body domain.ErrorResponse
			decode(t, w, &body)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestClosedStore(t *testing.T) {
	db := newTestDB(t, schema, seed)
	h := newHandler(db, config.DriverSQLite, service.Options{})

	assert.Equal(t, http.StatusOK, get(t, h, "/health").Code)

	require.NoError(t, db.Close())

	w := get(t, h, "/restaurants")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body domain.ErrorResponse
	decode(t, w, &body)
	assert.Equal(t, "sql: database is closed", body.Error)

	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/health").Code)
}

func TestShareCodeEndpoint(t *testing.T) {
	h := newHandler(newTestDB(t, schema, seed), config.DriverSQLite, service.Options{
		QR: service.DefaultQRGenerator{BaseURL: "http://localhost:3000"},
	})

	w := get(t, h, "/dishes/details/1/qrcode")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = get(t, h, "/restaurants/details/77/qrcode")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
