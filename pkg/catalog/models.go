package catalog

// Restaurant is one row of the restaurants table. The JSON field names match
// the column names.
type Restaurant struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	Cuisine           string  `json:"cuisine" db:"cuisine"`
	IsVeg             bool    `json:"isVeg" db:"isVeg"`
	HasOutdoorSeating bool    `json:"hasOutdoorSeating" db:"hasOutdoorSeating"`
	IsLuxury          bool    `json:"isLuxury" db:"isLuxury"`
	Rating            float64 `json:"rating" db:"rating"`
}

// Dish is one row of the dishes table. Price is in the catalog's currency
// units as stored.
type Dish struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Price float64 `json:"price" db:"price"`
	IsVeg bool    `json:"isVeg" db:"isVeg"`
}

// RestaurantFilter is a conjunction: a restaurant matches only if all three flags are equal.
type RestaurantFilter struct {
	IsVeg             bool
	HasOutdoorSeating bool
	IsLuxury          bool
}

// DishFilter matches dishes whose isVeg flag equals IsVeg.
type DishFilter struct {
	IsVeg bool
}

const (
	restaurantsTable = "restaurants"
	dishesTable      = "dishes"
)

var (
	restaurantColumns = []string{"id", "name", "cuisine", "isVeg", "hasOutdoorSeating", "isLuxury", "rating"}
	dishColumns       = []string{"id", "name", "price", "isVeg"}
)

func (r *Restaurant) fields() []any {
	return []any{&r.ID, &r.Name, &r.Cuisine, &r.IsVeg, &r.HasOutdoorSeating, &r.IsLuxury, &r.Rating}
}

func (d *Dish) fields() []any {
	return []any{&d.ID, &d.Name, &d.Price, &d.IsVeg}
}
