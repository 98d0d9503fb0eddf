package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/models"
	"github.com/tendermarket/tender-lifecycle/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenderService struct {
	Repo     repository.TenderRepository
	validate *validator.Validate
}

// NewTenderService создаёт новый экземпляр TenderService.
func NewTenderService(repo repository.TenderRepository) *TenderService {
	return &TenderService{Repo: repo, validate: validator.New()}
}

// FetchTenders получает список тендеров с необязательным фильтром по статусу.
func (s *TenderService) FetchTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	allowedStatuses := map[models.TenderStatus]bool{
		models.OpenTender:    true,
		models.ClosedTender:  true,
		models.AwardedTender: true,
	}
	for _, status := range statuses {
		if !allowedStatuses[models.TenderStatus(status)] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unsupported tender status: %s", status))
		}
	}
	return s.Repo.GetTenders(ctx, limit, offset, statuses)
}

// CreateTender создает новый тендер в статусе "Open for Bidding".
func (s *TenderService) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	if err := s.validate.Struct(tenderReq); err != nil {
		return nil, &models.ValidationError{Field: "tender", Reason: err.Error()}
	}
	if !tenderReq.Deadline.After(time.Now().UTC()) {
		return nil, &models.ValidationError{Field: "deadline", Reason: "must be in the future"}
	}
	return s.Repo.CreateTender(ctx, tenderReq)
}

// GetTenderStatus получает статус тендера.
func (s *TenderService) GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error) {
	if _, err := uuid.Parse(tenderId); err != nil {
		return "", &models.ValidationError{Field: "tenderId", Reason: "must be a valid uuid"}
	}
	status, err := s.Repo.GetTenderStatus(ctx, tenderId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &models.NotFoundError{Kind: "tender", ID: tenderId}
		}
		return "", err
	}
	return status, nil
}
