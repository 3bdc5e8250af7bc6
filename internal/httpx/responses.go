package httpx

import (
	"net/http"
)

// TextError writes a plain-text error body. Clients get a short generic
// message; details belong in the server log.
func TextError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message))
}
