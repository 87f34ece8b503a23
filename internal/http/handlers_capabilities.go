package httpx

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/target/dialtone/internal/capability"
)

// maxCapabilityBody bounds capability request bodies.
const maxCapabilityBody = 1 << 20

// CapabilityHandlers provides HTTP handlers for the capability registry.
type CapabilityHandlers struct {
	Registry *capability.Registry
}

// List returns the details of every registered capability.
// GET /capabilities.
func (h *CapabilityHandlers) List(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"capabilities": h.Registry.List()})
}

// Invoke runs a named capability against the request body.
// POST /capabilities/{name}.
func (h *CapabilityHandlers) Invoke(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCapabilityBody))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	result, err := h.Registry.Invoke(r.Context(), name, json.RawMessage(body))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
