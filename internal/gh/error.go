package gh

import (
	"fmt"
	"net/http"
	"strings"

	"emperror.dev/errors"
)

// HTTPError is returned for REST responses outside the 2xx range.
type HTTPError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GitHub API request %s %s failed: %s", e.Method, e.Endpoint, e.Status)
}

// IsNotFound returns true if the given error represents an HTTP 404 response.
// The GitHub contents API signals "file does not exist" this way.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// IsHTTPUnauthorized returns true if the given error is an HTTP 401 Unauthorized error.
func IsHTTPUnauthorized(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusUnauthorized
	}
	// The GraphQL package doesn't export proper error types so we have to
	// check the string.
	return strings.Contains(err.Error(), "status code: 401")
}
