package reservation

import (
	"fmt"
	"math"
)

// Quote is the derived price breakdown for a stay. It is never stored; the
// collaborator's total on the confirmed booking is authoritative and replaces
// the client-side figure.
type Quote struct {
	Nights    int     `json:"nights"`
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total_amount"`
}

// Price computes the quote for a room over the given number of nights at the
// hotel-wide tax rate (a percentage, e.g. 12 for 12%). It is a pure function:
// the same inputs always yield the same quote.
//
// nights <= 0 returns ErrNoNights; callers gate submission on it. A zero tax
// rate is valid and simply yields no tax.
func Price(room Room, nights int, taxRate float64) (Quote, error) {
	if nights <= 0 {
		return Quote{}, ErrNoNights
	}
	if room.PricePerNight < 0 {
		return Quote{}, NewValidationError("room nightly rate cannot be negative")
	}
	if taxRate < 0 {
		taxRate = 0
	}

	subtotal := roundCurrency(float64(nights) * room.PricePerNight)
	tax := roundCurrency(subtotal * taxRate / 100)
	return Quote{
		Nights:    nights,
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax,
	}, nil
}

// FormatAmount renders a monetary value with the hotel's currency symbol.
// The portal never converts currency; it only formats.
func FormatAmount(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// roundCurrency rounds to two decimal places, the hotel's currency precision.
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
