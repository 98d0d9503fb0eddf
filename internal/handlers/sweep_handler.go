package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/services"
	"github.com/tendermarket/tender-lifecycle/internal/utils"
)

// SweepHandler - структура для обработки запросов на внеочередной цикл
// обработки жизненного цикла тендеров.
type SweepHandler struct {
	Sweeper *services.LifecycleSweeper
	Logger  *slog.Logger
}

// NewSweepHandler создаёт новый экземпляр SweepHandler.
func NewSweepHandler(sweeper *services.LifecycleSweeper, logger *slog.Logger) *SweepHandler {
	return &SweepHandler{Sweeper: sweeper, Logger: logger}
}

// TriggerSweep запускает один цикл немедленно, не дожидаясь таймера.
func (h *SweepHandler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	report, err := h.Sweeper.RunLifecycleSweep(r.Context(), time.Now().UTC())
	if err != nil {
		h.Logger.Error("on-demand sweep failed", slog.String("error", err.Error()))
		utils.SendErrorResponse(w, http.StatusInternalServerError, "lifecycle sweep failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(report); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
