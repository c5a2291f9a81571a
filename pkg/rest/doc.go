// Package rest serves the restaurant and dish catalog as a read-only JSON API.
//
// All routes are GET and live under an optional base URL:
//
//	Route                           | Success body
//	--------------------------------|-----------------------------
//	/restaurants                    | {"restaurants": [...]}
//	/restaurants/details/{id}       | {"restaurant": {...}}
//	/restaurants/cuisine/{cuisine}  | {"restaurants": [...]}
//	/restaurants/filter             | {"restaurants": [...]}
//	/restaurants/sort-by-rating     | {"restaurants": [...]}
//	/dishes                         | {"dishes": [...]}
//	/dishes/details/{id}            | {"dish": {...}}
//	/dishes/filter                  | {"dishes": [...]}
//	/dishes/sort-by-price           | {"dishes": [...]}
//	/healthz                        | {"status": "ok"}
//
// The filter routes take boolean query parameters: isVeg, hasOutdoorSeating and
// isLuxury for restaurants, isVeg for dishes. Values are parsed with
// strconv.ParseBool, so "true", "1", "false" and "0" are all accepted.
//
// Every handler returns an error and a single wrapper turns it into a response:
//
//	Error               | Status | Body
//	--------------------|--------|-----------------------------
//	catalog.ErrNotFound | 404    | {"message": "<route specific>"}
//	*ParamError         | 400    | {"error": "<what was wrong>"}
//	anything else       | 500    | {"error": "<failure>"}
//
// Example:
//
//	db, err := store.Open(ctx, store.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	srv := rest.NewServer(catalog.New(db), rest.Options{Logger: logger})
//	log.Fatal(srv.ListenAndServe(":3000"))
package rest
