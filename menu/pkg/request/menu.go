package request

import (
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	Nutrition   *Nutrition      `json:"nutrition"`
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"    validate:"required"`
	Tags        []string        `json:"tags"        validate:"dive,required"`
	Ingredients []string        `json:"ingredients" validate:"dive,required"`
	Price       decimal.Decimal `json:"price"       validate:"price"`
}

type Nutrition struct {
	Calories int32 `json:"calories" validate:"gte=0"`
	Protein  int32 `json:"protein"  validate:"gte=0"`
	Carbs    int32 `json:"carbs"    validate:"gte=0"`
	Fat      int32 `json:"fat"      validate:"gte=0"`
}
