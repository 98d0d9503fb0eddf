package services

import (
	"context"
	"net/http"

	"github.com/tendermarket/tender-lifecycle/internal/models"
	"github.com/tendermarket/tender-lifecycle/internal/repository"
	"github.com/tendermarket/tender-lifecycle/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BidService struct {
	Repo     repository.BidRepository
	dbPool   *pgxpool.Pool
	validate *validator.Validate
}

// NewBidService создаёт новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, dbPool *pgxpool.Pool) *BidService {
	return &BidService{Repo: repo, dbPool: dbPool, validate: validator.New()}
}

// PlaceBid подаёт предложение по тендеру. Предложение принимается только пока
// тендер открыт; после дедлайна решения по предложениям принимает только
// обработчик жизненного цикла.
func (s *BidService) PlaceBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	if err := s.validate.Struct(bidReq); err != nil {
		return nil, &models.ValidationError{Field: "bid", Reason: err.Error()}
	}

	tenderExists, err := utils.CheckTenderExists(ctx, s.dbPool, bidReq.TenderID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !tenderExists {
		return nil, &models.NotFoundError{Kind: "tender", ID: bidReq.TenderID}
	}

	vendorExists, err := utils.CheckVendorExists(ctx, s.dbPool, bidReq.VendorID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !vendorExists {
		return nil, &models.NotFoundError{Kind: "vendor profile", ID: bidReq.VendorID}
	}

	return s.Repo.CreateBid(ctx, bidReq)
}

// GetTenderBids получает предложения тендера в порядке подачи.
func (s *BidService) GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error) {
	exists, err := utils.CheckTenderExists(ctx, s.dbPool, tenderId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return nil, &models.NotFoundError{Kind: "tender", ID: tenderId}
	}
	return s.Repo.GetTenderBids(ctx, tenderId)
}
