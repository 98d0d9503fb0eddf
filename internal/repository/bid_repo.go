package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTenderNotOpen возвращается при попытке подать предложение по тендеру,
// который уже покинул статус "Open for Bidding".
var ErrTenderNotOpen = models.NewErrorResponse(http.StatusConflict, "tender is no longer open for bidding")

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error)
	GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// CreateBid создает новое предложение. Вставка защищена условием на статус
// тендера: предложение по закрытому тендеру отклоняется даже при гонке с
// циклом обработки жизненного цикла.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	newBid := models.Bid{
		ID:          uuid.New().String(),
		TenderID:    bidReq.TenderID,
		VendorID:    bidReq.VendorID,
		Amount:      bidReq.Amount,
		Status:      models.SubmittedBid,
		SubmittedAt: time.Now().UTC(),
	}
	insertQuery := `INSERT INTO bid (id, tender_id, vendor_id, amount, status, submitted_at)
                   SELECT $1, $2, $3, $4, $5, $6
                   WHERE EXISTS (SELECT 1 FROM tender WHERE id = $2 AND status = $7)`
	tag, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.TenderID,
		newBid.VendorID,
		newBid.Amount,
		newBid.Status,
		newBid.SubmittedAt,
		models.OpenTender)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTenderNotOpen
	}
	return &newBid, nil
}

// GetTenderBids возвращает предложения тендера в порядке подачи.
func (r *PostgresBidRepository) GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error) {
	query := `SELECT id, tender_id, vendor_id, amount, status, explanation, submitted_at
              FROM bid WHERE tender_id = $1 ORDER BY submitted_at, id`
	rows, err := r.DB.Query(ctx, query, tenderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []models.Bid{}
	for rows.Next() {
		var bid models.Bid
		var explanation []byte
		if err := rows.Scan(
			&bid.ID,
			&bid.TenderID,
			&bid.VendorID,
			&bid.Amount,
			&bid.Status,
			&explanation,
			&bid.SubmittedAt); err != nil {
			return nil, err
		}
		if len(explanation) > 0 && string(explanation) != "null" {
			bid.Explanation = &models.Explanation{}
			if err := json.Unmarshal(explanation, bid.Explanation); err != nil {
				return nil, err
			}
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}
