package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Fixed is a two-place decimal column value. It renders with exactly two places
// so "100.00" reads back as "100.00".
type Fixed struct {
	decimal.Decimal
}

func NewFixed(d decimal.Decimal) Fixed { return Fixed{Decimal: d} }

func (f Fixed) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.StringFixed(2) + `"`), nil
}

// MarshalJSON renders totalSales as a JSON number with two places.
func (s Stats) MarshalJSON() ([]byte, error) {
	type plain Stats
	return json.Marshal(struct {
		plain
		TotalSales json.Number `json:"totalSales"`
	}{plain: plain(s), TotalSales: json.Number(s.TotalSales.StringFixed(2))})
}
