package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as JSON with the given status code. Encoding errors are
// dropped; the status line is already on the wire by then.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SeeOther answers a successful form post: 303 with the page to load next,
// echoed in the body for clients that do not follow redirects.
func SeeOther(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusSeeOther, map[string]string{"location": location})
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// PublicMessage returns the message a client may see for err: the error text
// for 4xx, the bare status text for 5xx.
func PublicMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
