package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Tables   int    `json:"tables"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		writeSuccess(w, HealthResponse{Status: "degraded", Database: "down"}, http.StatusServiceUnavailable)
		return
	}

	count, err := h.TablesRepo.CountTablesDB(r.Context())
	if err != nil {
		writeSuccess(w, HealthResponse{Status: "degraded", Database: "up"}, http.StatusServiceUnavailable)
		return
	}

	status := "ok"
	if count < 3 {
		status = "migrations pending"
	}

	writeSuccess(w, HealthResponse{Status: status, Database: "up", Tables: count}, http.StatusOK)
}
