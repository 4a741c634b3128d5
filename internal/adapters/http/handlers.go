package httpadapter

import (
	"encoding/json"
	"net/http"

	"svw.info/acosudoku/internal/domain"
	"svw.info/acosudoku/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/solve", h.handleSolve)
}

// handleSolve accepts a solver request and replies with the uniform result
// envelope. Failures of the engine itself stay HTTP 200 with success=false;
// only transport-level problems change the status code.
func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(domain.Result{Error: "invalid JSON: " + err.Error()})
		return
	}
	res := h.UC.Solve(r.Context(), req)
	_ = json.NewEncoder(w).Encode(res)
}
