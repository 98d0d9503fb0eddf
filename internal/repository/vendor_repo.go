package repository

import (
	"context"
	"fmt"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorRepository - интерфейс для работы с профилями поставщиков.
type VendorRepository interface {
	GetAllVendorProfiles(ctx context.Context) ([]models.VendorProfile, error)
	CreateVendorProfile(ctx context.Context, profileReq models.VendorProfileRequest) (*models.VendorProfile, error)
}

// PostgresVendorRepository - реализация VendorRepository для базы данных.
type PostgresVendorRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresVendorRepository создаёт новый экземпляр PostgresVendorRepository.
func NewPostgresVendorRepository(db *pgxpool.Pool) *PostgresVendorRepository {
	return &PostgresVendorRepository{DB: db}
}

// GetAllVendorProfiles возвращает все профили поставщиков.
func (r *PostgresVendorRepository) GetAllVendorProfiles(ctx context.Context) ([]models.VendorProfile, error) {
	query := `SELECT id, name, experience, specialization, location FROM vendor_profile ORDER BY name`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.VendorProfile{}
	for rows.Next() {
		var profile models.VendorProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.Name,
			&profile.Experience,
			&profile.Specialization,
			&profile.Location); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// CreateVendorProfile создаёт новый профиль поставщика.
func (r *PostgresVendorRepository) CreateVendorProfile(ctx context.Context, profileReq models.VendorProfileRequest) (*models.VendorProfile, error) {
	newProfile := models.VendorProfile{
		ID:             uuid.New().String(),
		Name:           profileReq.Name,
		Experience:     profileReq.Experience,
		Specialization: models.NormalizeSpecialization(profileReq.Specialization),
		Location:       profileReq.Location,
	}
	insertQuery := `INSERT INTO vendor_profile (id, name, experience, specialization, location)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newProfile.ID,
		newProfile.Name,
		newProfile.Experience,
		newProfile.Specialization,
		newProfile.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vendor profile: %w", err)
	}
	return &newProfile, nil
}
