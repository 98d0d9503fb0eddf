package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/models"
	"github.com/tendermarket/tender-lifecycle/internal/services"
	"github.com/tendermarket/tender-lifecycle/internal/utils"
)

// TenderHandler - структура для обработки HTTP-запросов по тендерам.
type TenderHandler struct {
	Service *services.TenderService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewTenderHandler создаёт новый экземпляр TenderHandler.
func NewTenderHandler(service *services.TenderService, logger *slog.Logger, timeout time.Duration) *TenderHandler {
	return &TenderHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetTenders обрабатывает запросы для получения списка тендеров.
func (h *TenderHandler) GetTenders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	statuses := r.URL.Query()["status"]

	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tenders, err := h.Service.FetchTenders(ctx, limit, offset, statuses)
	if err != nil {
		h.respondError(w, err, "failed to fetch tenders")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(tenders); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// CreateTender обрабатывает запросы для создания тендера.
func (h *TenderHandler) CreateTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var tenderReq models.TenderRequest
	if err := json.NewDecoder(r.Body).Decode(&tenderReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tender, err := h.Service.CreateTender(ctx, tenderReq)
	if err != nil {
		h.respondError(w, err, "failed to create tender")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(tender); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// GetTenderStatus обрабатывает запросы для получения статуса тендера.
func (h *TenderHandler) GetTenderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	status, err := h.Service.GetTenderStatus(ctx, tenderId)
	if err != nil {
		h.respondError(w, err, "failed to fetch tender status")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(map[string]models.TenderStatus{"status": status}); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *TenderHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	h.Logger.Error(fallback, slog.String("error", err.Error()))
	utils.SendServiceError(w, err, fallback)
}
