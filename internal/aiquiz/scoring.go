package aiquiz

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Score is 100*correct/total rounded half away from zero to one decimal place.
func Score(correct, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(correct)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
}

type performanceBand struct {
	min     decimal.Decimal
	message string
}

// Bands are checked top-down; the first threshold the score reaches wins.
var performanceBands = []performanceBand{
	{decimal.NewFromInt(90), "Excellent! You have mastered this topic."},
	{decimal.NewFromInt(70), "Very good! You have a solid understanding."},
	{decimal.NewFromInt(50), "Good effort! Review the explanations to improve."},
}

const keepPracticing = "Keep practicing! Study the material and try again."

func PerformanceMessage(score decimal.Decimal) string {
	for _, b := range performanceBands {
		if score.GreaterThanOrEqual(b.min) {
			return b.message
		}
	}
	return keepPracticing
}
