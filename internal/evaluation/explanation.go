package evaluation

import "github.com/tendermarket/tender-lifecycle/internal/models"

// Терминальные факторы, добавляемые после факторов оценки.
const (
	winnerFactor    = "selected as winning bid"
	outrankedFactor = "not selected despite acceptable score — a stronger bid was chosen"
)

// BuildExplanation собирает объяснение для оценённого предложения: факторы
// делятся по знаку с сохранением порядка правил, затем добавляется
// терминальный фактор исхода. При отрицательном счёте проигравшего
// терминальный фактор не нужен: отказ уже объяснён отрицательными факторами.
func BuildExplanation(entry RankedBid, isWinner bool) *models.Explanation {
	explanation := &models.Explanation{
		Positive: make([]string, 0, len(entry.Factors)+1),
		Negative: make([]string, 0, len(entry.Factors)+1),
	}
	for _, factor := range entry.Factors {
		if factor.Positive {
			explanation.Positive = append(explanation.Positive, factor.Text)
		} else {
			explanation.Negative = append(explanation.Negative, factor.Text)
		}
	}

	switch {
	case isWinner:
		explanation.Positive = append(explanation.Positive, winnerFactor)
	case !entry.Score.IsNegative():
		explanation.Negative = append(explanation.Negative, outrankedFactor)
	}
	return explanation
}

// ExcludedExplanation строит объяснение для предложения, исключённого из ранжирования.
func ExcludedExplanation(excluded ExcludedBid) *models.Explanation {
	return &models.Explanation{
		Positive: []string{},
		Negative: []string{excluded.Reason},
	}
}

// ReasonLateBid отклоняет предложение, вставленное параллельно с закрытием
// тендера: на момент оценки его ещё не существовало.
const ReasonLateBid = "bid submitted while tender was closing"

// LateBidExplanation строит объяснение для такого предложения.
func LateBidExplanation() *models.Explanation {
	return &models.Explanation{
		Positive: []string{},
		Negative: []string{ReasonLateBid},
	}
}
