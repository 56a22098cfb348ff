package response

import (
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	Nutrition   *Nutrition      `json:"nutrition,omitempty"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Ingredients []string        `json:"ingredients"`
	Price       decimal.Decimal `json:"price"`
}

type Nutrition struct {
	Calories int32 `json:"calories"`
	Protein  int32 `json:"protein"`
	Carbs    int32 `json:"carbs"`
	Fat      int32 `json:"fat"`
}

type HappyHour struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Discount      string `json:"discount"`
	TimeRemaining string `json:"time_remaining"`
	IsActive      bool   `json:"is_active"`
}
