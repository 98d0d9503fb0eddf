package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/peterldowns/testy/check"
)

// Валидация запроса отсекает некорректные идентификаторы до обращения к базе.
func TestPlaceBid_RejectsMalformedVendorID(t *testing.T) {
	svc := NewBidService(nil, nil)

	_, err := svc.PlaceBid(context.Background(), models.BidRequest{
		TenderID: "6f1c2b3a-8d4e-4a5b-9c6d-7e8f9a0b1c2d",
		VendorID: "vendor-a",
		Amount:   12000,
	})

	check.Error(t, err)
	var validationErr *models.ValidationError
	check.True(t, errors.As(err, &validationErr))
}

func TestPlaceBid_RejectsMalformedTenderID(t *testing.T) {
	svc := NewBidService(nil, nil)

	_, err := svc.PlaceBid(context.Background(), models.BidRequest{
		TenderID: "not-a-uuid",
		VendorID: "6f1c2b3a-8d4e-4a5b-9c6d-7e8f9a0b1c2d",
		Amount:   12000,
	})

	check.Error(t, err)
	var validationErr *models.ValidationError
	check.True(t, errors.As(err, &validationErr))
}

func TestPlaceBid_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewBidService(nil, nil)

	_, err := svc.PlaceBid(context.Background(), models.BidRequest{
		TenderID: "6f1c2b3a-8d4e-4a5b-9c6d-7e8f9a0b1c2d",
		VendorID: "0a9b8c7d-6e5f-4d3c-8b2a-1f0e9d8c7b6a",
		Amount:   0,
	})

	check.Error(t, err)
	var validationErr *models.ValidationError
	check.True(t, errors.As(err, &validationErr))
}
