package helpers

import (
	"net/http"
	"strconv"
)

// DefaultPage is used when the page query parameter is missing or invalid.
const DefaultPage = 1

// ParsePage reads the page query parameter from the request. The page size
// itself is fixed by the service layer, so only the page number is exposed.
func ParsePage(r *http.Request) int {
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			return v
		}
	}
	return DefaultPage
}
