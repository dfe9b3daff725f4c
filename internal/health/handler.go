package health

import "net/http"

// Handler responds to liveness probes. It does not touch the database or
// Redis; a process that can serve HTTP is considered alive.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
