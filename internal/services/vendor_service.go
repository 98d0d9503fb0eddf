package services

import (
	"context"

	"github.com/tendermarket/tender-lifecycle/internal/models"
	"github.com/tendermarket/tender-lifecycle/internal/repository"

	"github.com/go-playground/validator/v10"
)

type VendorService struct {
	Repo     repository.VendorRepository
	validate *validator.Validate
}

// NewVendorService создаёт новый экземпляр VendorService.
func NewVendorService(repo repository.VendorRepository) *VendorService {
	return &VendorService{Repo: repo, validate: validator.New()}
}

// FetchVendorProfiles получает все профили поставщиков.
func (s *VendorService) FetchVendorProfiles(ctx context.Context) ([]models.VendorProfile, error) {
	return s.Repo.GetAllVendorProfiles(ctx)
}

// CreateVendorProfile создаёт профиль поставщика. После нормализации тегов
// специализации их набор не может оказаться пустым.
func (s *VendorService) CreateVendorProfile(ctx context.Context, profileReq models.VendorProfileRequest) (*models.VendorProfile, error) {
	if err := s.validate.Struct(profileReq); err != nil {
		return nil, &models.ValidationError{Field: "vendor profile", Reason: err.Error()}
	}
	if len(models.NormalizeSpecialization(profileReq.Specialization)) == 0 {
		return nil, &models.ValidationError{Field: "specialization", Reason: "tags must not be blank"}
	}
	return s.Repo.CreateVendorProfile(ctx, profileReq)
}
