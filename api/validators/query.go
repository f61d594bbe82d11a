package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

// QueryString returns the trimmed query parameter, empty when absent.
func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryDate parses an optional ISO date query parameter. A missing value
// yields the zero time without error.
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := QueryString(r, name)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name).
			WithDetails(map[string]any{name: raw})
	}
	return parsed.UTC(), nil
}
