package bind

import (
	"net/http"
	"strconv"
	"strings"

	perr "spacebio/internal/platform/errors"
)

// QueryString returns the trimmed query value for key, "" when absent
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryIntPtr parses an optional integer query value
// absent or blank yields nil; anything non-numeric is a validation error on key
func QueryIntPtr(r *http.Request, key string) (*int, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, perr.Validationf(key, "%s must be an integer", key)
	}
	return &n, nil
}

// QueryInt parses an integer query value falling back to def when absent
func QueryInt(r *http.Request, key string, def int) (int, error) {
	p, err := QueryIntPtr(r, key)
	if err != nil || p == nil {
		return def, err
	}
	return *p, nil
}
