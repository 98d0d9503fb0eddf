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

// BidHandler - структура для обработки HTTP-запросов по предложениям.
type BidHandler struct {
	Service *services.BidService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewBidHandler создаёт новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger *slog.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы для подачи предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var bidReq models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&bidReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.PlaceBid(ctx, bidReq)
	if err != nil {
		h.respondError(w, err, "failed to place bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// GetTenderBids обрабатывает запросы для получения предложений тендера.
func (h *BidHandler) GetTenderBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	bids, err := h.Service.GetTenderBids(ctx, tenderId)
	if err != nil {
		h.respondError(w, err, "failed to fetch bids")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bids); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *BidHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	h.Logger.Error(fallback, slog.String("error", err.Error()))
	utils.SendServiceError(w, err, fallback)
}
