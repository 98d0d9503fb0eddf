package evaluation

import (
	"sort"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/shopspring/decimal"
)

// ReasonVendorNotFound - причина исключения предложения без профиля поставщика.
const ReasonVendorNotFound = "vendor profile not found"

// RankedBid - предложение с вычисленным счётом и факторами оценки.
type RankedBid struct {
	Bid     models.Bid
	Score   decimal.Decimal
	Factors []Factor
}

// ExcludedBid - предложение, исключённое из ранжирования.
type ExcludedBid struct {
	Bid    models.Bid
	Reason string
}

// SelectionResult содержит итог ранжирования предложений одного тендера.
// WinnerVendorID пуст, если победитель не выбран.
type SelectionResult struct {
	Ranked         []RankedBid
	Excluded       []ExcludedBid
	WinnerVendorID string
}

// Select оценивает все предложения тендера и ранжирует их по убыванию счёта.
// Предложения без профиля поставщика исключаются из ранжирования, но не
// прерывают оценку остальных. Порядок полный, поэтому повторный запуск на тех
// же данных всегда даёт тот же список и того же победителя.
func Select(tender models.Tender, vendors map[string]models.VendorProfile) *SelectionResult {
	ranked := make([]RankedBid, 0, len(tender.Bids))
	excluded := make([]ExcludedBid, 0)

	for _, bid := range tender.Bids {
		vendor, ok := vendors[bid.VendorID]
		if !ok {
			excluded = append(excluded, ExcludedBid{Bid: bid, Reason: ReasonVendorNotFound})
			continue
		}
		score, factors := Score(vendor, tender, bid)
		ranked = append(ranked, RankedBid{Bid: bid, Score: score, Factors: factors})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(ranked[i], ranked[j])
	})

	result := &SelectionResult{Ranked: ranked, Excluded: excluded}
	if len(ranked) > 0 {
		result.WinnerVendorID = ranked[0].Bid.VendorID
	}
	return result
}

// rankedBefore задаёт полный порядок предложений: больший счёт, затем меньшая
// сумма, затем более раннее время подачи, затем меньший id поставщика.
func rankedBefore(a, b RankedBid) bool {
	if c := a.Score.Cmp(b.Score); c != 0 {
		return c > 0
	}
	amountA := decimal.NewFromFloat(a.Bid.Amount)
	amountB := decimal.NewFromFloat(b.Bid.Amount)
	if c := amountA.Cmp(amountB); c != 0 {
		return c < 0
	}
	if !a.Bid.SubmittedAt.Equal(b.Bid.SubmittedAt) {
		return a.Bid.SubmittedAt.Before(b.Bid.SubmittedAt)
	}
	return a.Bid.VendorID < b.Bid.VendorID
}
