package models

import "time"

type TenderStatus string // Статус тендера

const (
	OpenTender    TenderStatus = "Open for Bidding" // Тендер открыт для подачи предложений
	ClosedTender  TenderStatus = "Closed"           // Тендер закрыт без победителя
	AwardedTender TenderStatus = "Awarded"          // Тендер закрыт, победитель выбран
)

// Tender представляет модель тендера.
type Tender struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Type               string       `json:"type"`
	Location           string       `json:"location"`
	RequiredExperience int          `json:"requiredExperience"`
	ExpectedAmount     float64      `json:"expectedAmount"`
	Status             TenderStatus `json:"status"`
	Deadline           time.Time    `json:"deadline"`
	Bids               []Bid        `json:"bids"`
	Winner             string       `json:"winner,omitempty"`
	CreatedBy          string       `json:"createdBy"`
	CreatedAt          time.Time    `json:"createdAt"`
}

// TenderRequest представляет структуру запроса для создания тендера.
type TenderRequest struct {
	Title              string    `json:"title" validate:"required"`
	Description        string    `json:"description" validate:"required"`
	Type               string    `json:"type" validate:"required"`
	Location           string    `json:"location" validate:"required"`
	RequiredExperience int       `json:"requiredExperience" validate:"gte=0"`
	ExpectedAmount     float64   `json:"expectedAmount" validate:"gt=0"`
	Deadline           time.Time `json:"deadline" validate:"required"`
	CreatedBy          string    `json:"createdBy" validate:"required"`
}
