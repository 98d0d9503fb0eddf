package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
)

// PingHandler отвечает на проверку живости сервиса.
func PingHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "ok"); err != nil {
			logger.Error("failed to write ping response", slog.String("error", err.Error()))
		}
	}
}
