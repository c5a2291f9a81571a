package rest

import (
	"fmt"
	"net/http"
	"strconv"
)

// ParamError reports a path or query parameter that could not be parsed. It is
// answered with 400.
type ParamError struct {
	Name  string
	Value string
	Want  string
}

func (e *ParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("missing %s: want %s", e.Name, e.Want)
	}
	return fmt.Sprintf("invalid %s %q: want %s", e.Name, e.Value, e.Want)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParamError{Name: "id", Value: raw, Want: "an integer"}
	}
	return id, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ParamError{Name: name, Value: raw, Want: "true or false"}
	}
	return v, nil
}
