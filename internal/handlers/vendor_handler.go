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

// VendorHandler - структура для обработки HTTP-запросов по профилям поставщиков.
type VendorHandler struct {
	Service *services.VendorService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewVendorHandler создаёт новый экземпляр VendorHandler.
func NewVendorHandler(service *services.VendorService, logger *slog.Logger, timeout time.Duration) *VendorHandler {
	return &VendorHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetVendorProfiles обрабатывает запросы для получения профилей поставщиков.
func (h *VendorHandler) GetVendorProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	profiles, err := h.Service.FetchVendorProfiles(ctx)
	if err != nil {
		h.respondError(w, err, "failed to fetch vendor profiles")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(profiles); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// CreateVendorProfile обрабатывает запросы для создания профиля поставщика.
func (h *VendorHandler) CreateVendorProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var profileReq models.VendorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&profileReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.CreateVendorProfile(ctx, profileReq)
	if err != nil {
		h.respondError(w, err, "failed to create vendor profile")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(profile); err != nil {
		h.Logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *VendorHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	h.Logger.Error(fallback, slog.String("error", err.Error()))
	utils.SendServiceError(w, err, fallback)
}
