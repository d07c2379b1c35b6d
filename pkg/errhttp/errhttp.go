// Package errhttp maps domain sentinel errors to HTTP status codes.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/itemvalidation/pkg/binding"
	"github.com/ghuser/itemvalidation/pkg/httpx"
	itemdomain "github.com/ghuser/itemvalidation/services/item/domain"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{itemdomain.ErrItemNotFound, http.StatusNotFound},
	{itemdomain.ErrUnknownVariant, http.StatusNotFound},
	{itemdomain.ErrInvalidItemID, http.StatusBadRequest},
	{itemdomain.ErrBindingFailed, http.StatusBadRequest},
	{itemdomain.ErrValueOutOfRange, http.StatusBadRequest},
	{binding.ErrMalformedBody, http.StatusBadRequest},
}

// Status returns the response status for err. Unrecognized errors are 500.
func Status(err error) int {
	// Checked first: an oversized body also wraps ErrMalformedBody.
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// WriteError writes {"error": ...} with Status(err). The text of 5xx errors
// is replaced by the status text.
func WriteError(w http.ResponseWriter, err error) {
	status := Status(err)
	httpx.JSONError(w, status, httpx.PublicMessage(err, status))
}
