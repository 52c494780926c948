package model

import (
	"github.com/shopspring/decimal"
)

const (
	DiscountKindPercent = "percent"
	DiscountKindFixed   = "fixed"

	// NoDiscountID is the sentinel row the upstream seeds for "no discount".
	// Referencing it always yields a zero amount without a lookup.
	NoDiscountID int64 = 1
)

// DiscountCode is immutable once fetched for a computation. Validity is
// gated on Active and the StartDate/EndDate window.
type DiscountCode struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Kind      string          `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	StartDate Date            `json:"start_date"`
	EndDate   Date            `json:"end_date"`
	Active    bool            `json:"active"`
}
