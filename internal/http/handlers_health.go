package httpx

import "net/http"

// healthHandler answers readiness/liveness probes. HEAD gets headers only so
// load-balancer checks stay cheap.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
