package httpUtils

import (
	"fmt"
	"net/http"
)

// HttpError is returned by MakeRequest for any non-2xx response.
type HttpError struct {
	StatusCode int
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
}
