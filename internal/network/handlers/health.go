package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/denmor86/ya-orderbot/internal/logger"
)

// BackendProbe сообщает состояние связи с бэкендом заказов (состояние circuit breaker)
type BackendProbe interface {
	BackendState() string
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// HealthHandler - проверка живости процесса. Недоступный бэкенд не делает процесс нездоровым.
func HealthHandler(probe BackendProbe) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Backend: "unknown"}
		if probe != nil {
			resp.Backend = probe.BackendState()
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}
