package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/denmor86/ya-orderbot/internal/helpers"
	"github.com/denmor86/ya-orderbot/internal/logger"
)

// NotificationsToggle - переключатель уведомлений о новых заказах
type NotificationsToggle interface {
	Enabled() bool
	Set(enabled bool)
}

type NotificationsState struct {
	Enabled *bool `json:"enabled"`
}

func state(enabled bool) NotificationsState {
	return NotificationsState{Enabled: &enabled}
}

// GetNotificationsHandler - текущее состояние уведомлений
func GetNotificationsHandler(toggle NotificationsToggle) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, state(toggle.Enabled()))
	})
}

// SetNotificationsHandler - включение и выключение уведомлений оператором
func SetNotificationsHandler(toggle NotificationsToggle) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator, err := helpers.GetOperator(r.Context())
		if err != nil {
			logger.Warn("failed to get operator", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req NotificationsState
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			logger.Warn("invalid notifications request", "operator", operator, "error", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		toggle.Set(*req.Enabled)
		logger.Info("notifications switched via ops api", "operator", operator, "enabled", *req.Enabled)
		writeJSON(w, http.StatusOK, state(toggle.Enabled()))
	})
}
