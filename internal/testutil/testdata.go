package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// Restaurant and Dish mirror the catalog rows so fixtures can be loaded without
// importing the packages under test.
type Restaurant struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Cuisine           string  `json:"cuisine"`
	IsVeg             bool    `json:"isVeg"`
	HasOutdoorSeating bool    `json:"hasOutdoorSeating"`
	IsLuxury          bool    `json:"isLuxury"`
	Rating            float64 `json:"rating"`
}

type Dish struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	IsVeg bool    `json:"isVeg"`
}

// Fixtures is the content of a catalog fixture file.
type Fixtures struct {
	Restaurants []Restaurant `json:"restaurants"`
	Dishes      []Dish       `json:"dishes"`
}

// LoadJSON reads and unmarshals a JSON file relative to this package. If target is provided, it attempts to unmarshal the JSON into the target struct.
func LoadJSON(filename string, target ...any) (map[string]any, error) {
	var result map[string]any

	_, currentFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(currentFile)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, err
	}

	if len(target) > 0 && target[0] != nil {
		err = json.Unmarshal(data, target[0])
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// CatalogFixtures loads testdata/catalog.json.
func CatalogFixtures() (Fixtures, error) {
	var f Fixtures
	_, err := LoadJSON("testdata/catalog.json", &f)
	return f, err
}
