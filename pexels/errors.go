package pexels

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aouyang1/pexelwallpaper/i18n"
)

// FetchError is a failed page request. Network is set when no response was
// received at all, otherwise Status holds the http status code.
type FetchError struct {
	Network bool
	Status  int
	Details json.RawMessage
	Err     error
}

func (e *FetchError) Error() string {
	if e.Network {
		return fmt.Sprintf("pexels network error: %v", e.Err)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("pexels api returned status %d: %s", e.Status, string(e.Details))
	}
	return fmt.Sprintf("pexels api returned status %d", e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorMessage turns a fetch failure into the status text shown to the user.
// A nil or unclassified error means the collection simply had no photos.
func ErrorMessage(t i18n.Translations, err error) string {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return t.Get("statusNoPhotosFound")
	}

	if fetchErr.Network {
		return t.Get("statusErrorNetwork")
	}

	switch fetchErr.Status {
	case http.StatusUnauthorized:
		return t.Get("statusError401")
	case http.StatusTooManyRequests:
		return t.Get("statusError429")
	case 0:
		return t.Get("statusNoPhotosFound")
	default:
		return t.Format("statusErrorGeneric", map[string]string{"status": strconv.Itoa(fetchErr.Status)})
	}
}
