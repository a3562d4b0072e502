package event

import "github.com/shopspring/decimal"

// Price pairs an amount with its currency code.
type Price struct {
	Amount   decimal.Decimal
	Currency string
}

// NewPrice builds a price value.
func NewPrice(amount decimal.Decimal, currency string) Price {
	return Price{Amount: amount, Currency: currency}
}

// NewPriceINR builds an INR price, the marketplace default.
func NewPriceINR(amount decimal.Decimal) Price {
	return Price{Amount: amount, Currency: "INR"}
}
