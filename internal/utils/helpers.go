package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendServiceError отправляет ошибку сервисного слоя с подходящим HTTP-статусом.
func SendServiceError(w http.ResponseWriter, err error, fallback string) {
	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		SendErrorResponse(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		SendErrorResponse(w, http.StatusNotFound, notFoundErr.Error())
		return
	}
	SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// CheckTenderExists проверяет, существует ли тендер
func CheckTenderExists(ctx context.Context, dbPool *pgxpool.Pool, tenderId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tender WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, tenderId).Scan(&exists)
	return exists, err
}

// CheckVendorExists проверяет, существует ли профиль поставщика
func CheckVendorExists(ctx context.Context, dbPool *pgxpool.Pool, vendorId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM vendor_profile WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, vendorId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
