package status

import "crownhold/internal/domain/royal"

type Request struct{}

type Response struct {
	ThroneVacant  bool           `json:"throne_vacant"`
	Monarch       *royal.Monarch `json:"monarch,omitempty"`
	DailyIncome   int64          `json:"daily_income"`
	DailyExpenses int64          `json:"daily_expenses"`
	GuardCount    int            `json:"guard_count"`
}
