package mw

import "net/http"

// forbid answers 403 with the same JSON error shape the handlers use.
func forbid(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"Forbidden"}` + "\n"))
}
