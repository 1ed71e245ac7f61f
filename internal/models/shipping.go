package models

// Shipping is charged as a step function of total quantity: a flat fee per
// started block of units. This single function backs both the display quote
// endpoint and the authoritative checkout pricing, so the two can never drift.
const (
	ShippingFeePerBlock = 49.0 // INR
	ShippingBlockSize   = 5    // units per block
)

type ShippingQuote struct {
	TotalItems int     `json:"total_items"`
	Fee        float64 `json:"fee"`
	Currency   string  `json:"currency"`
}

// ShippingFee returns the fee for a given total quantity.
func ShippingFee(totalItems int) float64 {
	if totalItems <= 0 {
		return 0
	}
	blocks := (totalItems + ShippingBlockSize - 1) / ShippingBlockSize
	return float64(blocks) * ShippingFeePerBlock
}
