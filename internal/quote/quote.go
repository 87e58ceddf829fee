// Package quote computes the preliminary trade-in price shown to a customer.
package quote

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	BasePrice       = 4_500_000
	YearPenalty     = 70_000 // per year of age
	MileagePenalty  = 3      // per unit of distance
	FloorPrice      = 100_000
	ReferenceYear   = 2025
	MinYear         = 1980
	MaxYear         = ReferenceYear
	MaxMileage      = 10_000_000
	DefaultCurrency = "₽"
)

// Estimate is the derived, non-authoritative price breakdown for a vehicle.
type Estimate struct {
	BasePrice      int64 `json:"basePrice"`
	YearPenalty    int64 `json:"yearPenalty"`
	MileagePenalty int64 `json:"mileagePenalty"`
	FinalPrice     int64 `json:"finalPrice"`
}

// Compute prices a vehicle from its year and mileage. Callers validate the
// inputs first; the result never drops below FloorPrice. Mileage is capped at
// MaxMileage, which already prices at the floor.
func Compute(year, mileage int) Estimate {
	mileage = min(max(mileage, 0), MaxMileage)
	e := Estimate{
		BasePrice:      BasePrice,
		YearPenalty:    int64(ReferenceYear-year) * YearPenalty,
		MileagePenalty: int64(mileage) * MileagePenalty,
	}
	e.FinalPrice = max(FloorPrice, e.BasePrice-e.YearPenalty-e.MileagePenalty)
	return e
}

var printer = message.NewPrinter(language.Russian)

// Format renders a price with Russian digit grouping, e.g. "3 850 000".
// Display only; persisted values stay raw integers.
func Format(price int64) string {
	return printer.Sprintf("%d", price)
}

// Display is Format plus the currency sign.
func (e Estimate) Display() string {
	return Format(e.FinalPrice) + " " + DefaultCurrency
}
