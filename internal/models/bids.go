package models

import "time"

type BidStatus string // Статус предложения

const (
	SubmittedBid BidStatus = "Submitted" // Предложение подано, решения ещё нет
	SelectedBid  BidStatus = "Selected"  // Предложение выбрано победителем
	RejectedBid  BidStatus = "Rejected"  // Предложение отклонено
)

// Bid представляет предложение поставщика по тендеру.
type Bid struct {
	ID          string       `json:"id"`
	TenderID    string       `json:"-"`
	VendorID    string       `json:"vendorId"`
	Amount      float64      `json:"amount"`
	SubmittedAt time.Time    `json:"timestamp"`
	Status      BidStatus    `json:"status"`
	Explanation *Explanation `json:"explanation,omitempty"`
}

// BidRequest представляет структуру запроса для подачи предложения.
type BidRequest struct {
	TenderID string  `json:"tenderId" validate:"required,uuid4"`
	VendorID string  `json:"vendorId" validate:"required,uuid4"`
	Amount   float64 `json:"amount" validate:"gt=0"`
}

// Explanation содержит структурированное обоснование решения по предложению.
// Каждая запись - короткая формулировка одного фактора оценки.
type Explanation struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}
