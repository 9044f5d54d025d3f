package collector

import (
	"errors"
	"fmt"
)

// ErrNoPriceData is returned when a price series response carries no points.
var ErrNoPriceData = errors.New("No price data available")

// APIError is a non-2xx response or a 2xx response carrying an {error} payload.
// Message is the server's error text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return e.Message
}

// Message returns the text shown to the user for err. Wrapping added by the
// client is stripped so the alert reads the same as the backend's message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, ErrNoPriceData) {
		return ErrNoPriceData.Error()
	}
	return err.Error()
}
