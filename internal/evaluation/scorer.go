package evaluation

import (
	"fmt"
	"strings"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/shopspring/decimal"
)

const scorePrecision int32 = 4 // 4 знака после запятой, чтобы равенство счёта определялось точно

// Веса правил оценки в порядке их применения.
var (
	experienceBonus     = decimal.NewFromFloat(2.0)
	specializationBonus = decimal.NewFromFloat(1.5)
	locationBonus       = decimal.NewFromFloat(0.5)
	priceBonusCap       = decimal.NewFromFloat(1.0)
	overBudgetPenalty   = decimal.NewFromFloat(1.0)
	overBudgetThreshold = decimal.NewFromFloat(1.2)
)

// Factor - один фактор объяснения оценки, положительный или отрицательный.
type Factor struct {
	Positive bool
	Text     string
}

// Score вычисляет соответствие предложения тендеру для одного поставщика.
// Чистая функция: правила применяются в фиксированном порядке, каждое
// добавляет вес к счёту и не более одного фактора в список.
func Score(vendor models.VendorProfile, tender models.Tender, bid models.Bid) (decimal.Decimal, []Factor) {
	score := decimal.Zero
	factors := make([]Factor, 0, 4)

	// Правило 1: требуемый опыт. Недобор штрафуется пропорционально.
	if vendor.Experience >= tender.RequiredExperience {
		score = score.Add(experienceBonus)
		factors = append(factors, Factor{Positive: true, Text: "meets/exceeds required experience"})
	} else {
		shortfall := tender.RequiredExperience - vendor.Experience
		ratio := decimal.NewFromInt(int64(shortfall)).Div(decimal.NewFromInt(int64(tender.RequiredExperience)))
		score = score.Sub(ratio)
		factors = append(factors, Factor{
			Positive: false,
			Text:     fmt.Sprintf("below required experience by %d years", shortfall),
		})
	}

	// Правило 2: совпадение специализации с типом тендера.
	if hasSpecialization(vendor.Specialization, tender.Type) {
		score = score.Add(specializationBonus)
		factors = append(factors, Factor{Positive: true, Text: "specialization matches tender type"})
	} else {
		factors = append(factors, Factor{Positive: false, Text: "no specialization match"})
	}

	// Правило 3: совпадение локации. Несовпадение не штрафуется и фактора не даёт.
	if strings.EqualFold(strings.TrimSpace(vendor.Location), strings.TrimSpace(tender.Location)) {
		score = score.Add(locationBonus)
	}

	// Правило 4: конкурентность цены относительно ожидаемого бюджета.
	amount := decimal.NewFromFloat(bid.Amount)
	expected := decimal.NewFromFloat(tender.ExpectedAmount)
	switch {
	case amount.LessThanOrEqual(expected):
		bonus := decimal.NewFromInt(1).Sub(amount.Div(expected))
		if bonus.GreaterThan(priceBonusCap) {
			bonus = priceBonusCap
		}
		score = score.Add(bonus)
		factors = append(factors, Factor{Positive: true, Text: "competitive pricing"})
	case amount.GreaterThan(expected.Mul(overBudgetThreshold)):
		score = score.Sub(overBudgetPenalty)
		factors = append(factors, Factor{
			Positive: false,
			Text:     "price exceeds expected budget by more than 20%",
		})
	}

	return score.Round(scorePrecision), factors
}

// hasSpecialization проверяет наличие тега в списке специализаций без учёта регистра.
func hasSpecialization(specialization []string, tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, s := range specialization {
		if strings.EqualFold(strings.TrimSpace(s), tag) {
			return true
		}
	}
	return false
}
