package evaluation

import (
	"testing"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func TestBuildExplanation_Winner(t *testing.T) {
	entry := RankedBid{
		Score: decimal.NewFromFloat(4.1),
		Factors: []Factor{
			{Positive: true, Text: "meets/exceeds required experience"},
			{Positive: true, Text: "specialization matches tender type"},
			{Positive: true, Text: "competitive pricing"},
		},
	}

	explanation := BuildExplanation(entry, true)

	check.Equal(t, []string{
		"meets/exceeds required experience",
		"specialization matches tender type",
		"competitive pricing",
		"selected as winning bid",
	}, explanation.Positive)
	check.Equal(t, []string{}, explanation.Negative)
}

func TestBuildExplanation_OutrankedWithAcceptableScore(t *testing.T) {
	entry := RankedBid{
		Score: decimal.NewFromFloat(2.5),
		Factors: []Factor{
			{Positive: true, Text: "meets/exceeds required experience"},
			{Positive: false, Text: "no specialization match"},
			{Positive: true, Text: "competitive pricing"},
		},
	}

	explanation := BuildExplanation(entry, false)

	// Порядок правил сохраняется внутри каждой из последовательностей.
	check.Equal(t, []string{
		"meets/exceeds required experience",
		"competitive pricing",
	}, explanation.Positive)
	check.Equal(t, []string{
		"no specialization match",
		"not selected despite acceptable score — a stronger bid was chosen",
	}, explanation.Negative)
}

func TestBuildExplanation_ZeroScoreGetsTerminalFactor(t *testing.T) {
	entry := RankedBid{Score: decimal.Zero, Factors: []Factor{}}

	explanation := BuildExplanation(entry, false)

	check.Equal(t, []string{
		"not selected despite acceptable score — a stronger bid was chosen",
	}, explanation.Negative)
}

func TestBuildExplanation_NegativeScoreHasNoTerminalFactor(t *testing.T) {
	entry := RankedBid{
		Score: decimal.NewFromFloat(-0.2),
		Factors: []Factor{
			{Positive: false, Text: "below required experience by 2 years"},
			{Positive: false, Text: "no specialization match"},
			{Positive: true, Text: "competitive pricing"},
		},
	}

	explanation := BuildExplanation(entry, false)

	check.Equal(t, []string{"competitive pricing"}, explanation.Positive)
	check.Equal(t, []string{
		"below required experience by 2 years",
		"no specialization match",
	}, explanation.Negative)
}

func TestExcludedExplanation(t *testing.T) {
	explanation := ExcludedExplanation(ExcludedBid{
		Bid:    models.Bid{ID: "bid-ghost"},
		Reason: ReasonVendorNotFound,
	})

	check.Equal(t, []string{}, explanation.Positive)
	check.Equal(t, []string{"vendor profile not found"}, explanation.Negative)
}

func TestLateBidExplanation(t *testing.T) {
	explanation := LateBidExplanation()

	check.Equal(t, []string{}, explanation.Positive)
	check.Equal(t, []string{"bid submitted while tender was closing"}, explanation.Negative)
}
