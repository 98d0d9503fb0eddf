package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/evaluation"
	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// TenderRepository - интерфейс для работы с тендерами.
type TenderRepository interface {
	GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error)
	CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error)
	GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error)
	GetOpenTendersPastDeadline(ctx context.Context, now time.Time) ([]models.Tender, error)
	PersistTenderTransition(ctx context.Context, tender *models.Tender) error
}

// PostgresTenderRepository - реализация TenderRepository для базы данных.
type PostgresTenderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTenderRepository создаёт новый экземпляр PostgresTenderRepository.
func NewPostgresTenderRepository(db *pgxpool.Pool) *PostgresTenderRepository {
	return &PostgresTenderRepository{DB: db}
}

// GetTenders возвращает список тендеров вместе с их предложениями.
func (r *PostgresTenderRepository) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	query := `SELECT id, title, description, type, location, required_experience, expected_amount, status, deadline, winner, created_by, created_at
              FROM tender`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *tender)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachBids(ctx, tenders)
}

// CreateTender создает новый тендер в статусе "Open for Bidding".
func (r *PostgresTenderRepository) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	newTender := models.Tender{
		ID:                 uuid.New().String(),
		Title:              tenderReq.Title,
		Description:        tenderReq.Description,
		Type:               tenderReq.Type,
		Location:           tenderReq.Location,
		RequiredExperience: tenderReq.RequiredExperience,
		ExpectedAmount:     tenderReq.ExpectedAmount,
		Status:             models.OpenTender,
		Deadline:           tenderReq.Deadline.UTC(),
		Bids:               []models.Bid{},
		CreatedBy:          tenderReq.CreatedBy,
		CreatedAt:          time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO tender (id, title, description, type, location, required_experience, expected_amount, status, deadline, created_by, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
   `,
		newTender.ID,
		newTender.Title,
		newTender.Description,
		newTender.Type,
		newTender.Location,
		newTender.RequiredExperience,
		newTender.ExpectedAmount,
		newTender.Status,
		newTender.Deadline,
		newTender.CreatedBy,
		newTender.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tender: %w", err)
	}
	return &newTender, nil
}

// GetTenderStatus возвращает статус тендера.
func (r *PostgresTenderRepository) GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error) {
	var status models.TenderStatus
	query := `SELECT status FROM tender WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, tenderId).Scan(&status)
	if err != nil {
		return "", err
	}
	return status, nil
}

// GetOpenTendersPastDeadline возвращает открытые тендеры с истёкшим дедлайном
// вместе с их предложениями в порядке подачи.
func (r *PostgresTenderRepository) GetOpenTendersPastDeadline(ctx context.Context, now time.Time) ([]models.Tender, error) {
	query := `SELECT id, title, description, type, location, required_experience, expected_amount, status, deadline, winner, created_by, created_at
              FROM tender WHERE status = $1 AND deadline <= $2 ORDER BY deadline`
	rows, err := r.DB.Query(ctx, query, models.OpenTender, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *tender)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachBids(ctx, tenders)
}

// PersistTenderTransition сохраняет переход тендера и статусы его предложений
// одной транзакцией. Условие на статус оставляет обработчик жизненного цикла
// единственным писателем: уже переведённый тендер повторно не изменяется.
func (r *PostgresTenderRepository) PersistTenderTransition(ctx context.Context, tender *models.Tender) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return &models.PersistenceError{TenderID: tender.ID, Err: err}
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE tender SET status = $2, winner = $3 WHERE id = $1 AND status = $4`,
		tender.ID,
		tender.Status,
		nullableString(tender.Winner),
		models.OpenTender)
	if err != nil {
		return &models.PersistenceError{TenderID: tender.ID, Err: err}
	}
	if tag.RowsAffected() == 0 {
		// Тендер уже переведён предыдущим циклом, изменения не применяются.
		return nil
	}

	for i := range tender.Bids {
		bid := &tender.Bids[i]
		explanation, err := json.Marshal(bid.Explanation)
		if err != nil {
			return &models.PersistenceError{TenderID: tender.ID, Err: err}
		}
		if _, err := tx.Exec(ctx, `UPDATE bid SET status = $2, explanation = $3 WHERE id = $1`,
			bid.ID, bid.Status, explanation); err != nil {
			return &models.PersistenceError{TenderID: tender.ID, Err: err}
		}
	}

	// Ставка, зафиксированная параллельно с этой транзакцией, в оценке не
	// участвовала; у закрытого тендера статус Submitted остаться не может.
	lateExplanation, err := json.Marshal(evaluation.LateBidExplanation())
	if err != nil {
		return &models.PersistenceError{TenderID: tender.ID, Err: err}
	}
	if _, err := tx.Exec(ctx, `UPDATE bid SET status = $2, explanation = $3 WHERE tender_id = $1 AND status = $4`,
		tender.ID, models.RejectedBid, lateExplanation, models.SubmittedBid); err != nil {
		return &models.PersistenceError{TenderID: tender.ID, Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &models.PersistenceError{TenderID: tender.ID, Err: err}
	}
	return nil
}

// attachBids загружает предложения для набора тендеров одним запросом.
func (r *PostgresTenderRepository) attachBids(ctx context.Context, tenders []models.Tender) ([]models.Tender, error) {
	if len(tenders) == 0 {
		return tenders, nil
	}

	ids := make([]string, 0, len(tenders))
	for _, tender := range tenders {
		ids = append(ids, tender.ID)
	}

	query := `SELECT id, tender_id, vendor_id, amount, status, explanation, submitted_at
              FROM bid WHERE tender_id = ANY($1) ORDER BY submitted_at, id`
	rows, err := r.DB.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bidsByTender := make(map[string][]models.Bid, len(tenders))
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
		bidsByTender[bid.TenderID] = append(bidsByTender[bid.TenderID], bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tenders {
		bids := bidsByTender[tenders[i].ID]
		if bids == nil {
			bids = []models.Bid{}
		}
		tenders[i].Bids = bids
	}
	return tenders, nil
}

// scanTender читает строку тендера; winner в базе может быть NULL.
func scanTender(row interface{ Scan(dest ...any) error }) (*models.Tender, error) {
	var tender models.Tender
	var winner sql.NullString
	if err := row.Scan(
		&tender.ID,
		&tender.Title,
		&tender.Description,
		&tender.Type,
		&tender.Location,
		&tender.RequiredExperience,
		&tender.ExpectedAmount,
		&tender.Status,
		&tender.Deadline,
		&winner,
		&tender.CreatedBy,
		&tender.CreatedAt); err != nil {
		return nil, err
	}
	if winner.Valid {
		tender.Winner = winner.String
	}
	return &tender, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
