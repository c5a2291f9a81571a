package rest

import (
	"net/http"

	"github.com/edgeflare/tastebud/pkg/catalog"
	"github.com/edgeflare/tastebud/pkg/httputil"
)

func (s *Server) listRestaurants(w http.ResponseWriter, r *http.Request) error {
	restaurants, err := s.catalog.Restaurants(r.Context())
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
	return nil
}

func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	restaurant, err := s.catalog.RestaurantByID(r.Context(), id)
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"restaurant": restaurant})
	return nil
}

func (s *Server) restaurantsByCuisine(w http.ResponseWriter, r *http.Request) error {
	restaurants, err := s.catalog.RestaurantsByCuisine(r.Context(), r.PathValue("cuisine"))
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
	return nil
}

func (s *Server) filterRestaurants(w http.ResponseWriter, r *http.Request) error {
	var (
		f   catalog.RestaurantFilter
		err error
	)
	if f.IsVeg, err = queryBool(r, "isVeg"); err != nil {
		return err
	}
	if f.HasOutdoorSeating, err = queryBool(r, "hasOutdoorSeating"); err != nil {
		return err
	}
	if f.IsLuxury, err = queryBool(r, "isLuxury"); err != nil {
		return err
	}

	restaurants, err := s.catalog.FilterRestaurants(r.Context(), f)
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
	return nil
}

func (s *Server) restaurantsByRating(w http.ResponseWriter, r *http.Request) error {
	restaurants, err := s.catalog.RestaurantsByRating(r.Context())
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
	return nil
}

func (s *Server) listDishes(w http.ResponseWriter, r *http.Request) error {
	dishes, err := s.catalog.Dishes(r.Context())
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"dishes": dishes})
	return nil
}

func (s *Server) getDish(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	dish, err := s.catalog.DishByID(r.Context(), id)
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"dish": dish})
	return nil
}

func (s *Server) filterDishes(w http.ResponseWriter, r *http.Request) error {
	isVeg, err := queryBool(r, "isVeg")
	if err != nil {
		return err
	}
	dishes, err := s.catalog.FilterDishes(r.Context(), catalog.DishFilter{IsVeg: isVeg})
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"dishes": dishes})
	return nil
}

func (s *Server) dishesByPrice(w http.ResponseWriter, r *http.Request) error {
	dishes, err := s.catalog.DishesByPrice(r.Context())
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"dishes": dishes})
	return nil
}
