package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMinOrderAmount is the order floor used when no other value is configured.
const DefaultMinOrderAmount = 25

// DefaultMaxLineQuantity caps a single cart line. Quantities are stored as
// 32-bit integers.
const DefaultMaxLineQuantity = 100

// DefaultMaxOrderAmount keeps totals within the NUMERIC(10,2) order column.
const DefaultMaxOrderAmount = 100000

// CurrencyScale is the number of decimal places every price is held at.
const CurrencyScale = 2

const (
	DefaultCurrency       = "ILS"
	DefaultBakeryCategory = "bakery"
	DefaultSmallVariation = "small"
)

var (
	defaultSmallPrice = decimal.RequireFromString("4.50")
	defaultLargePrice = decimal.RequireFromString("8.30")
)

// Policy holds every pricing rule that is a business choice rather than
// arithmetic. It is built once at start-up and passed to the Pricer.
type Policy struct {
	MinOrderAmount decimal.Decimal
	MaxOrderAmount decimal.Decimal
	Currency       string

	MaxLineQuantity int64

	RequireEmail bool
	RequirePhone bool

	// Items of BakeryCategory with a selected variation are charged by size
	// instead of the catalog price.
	BakeryCategory string
	SmallVariation string
	SmallPrice     decimal.Decimal
	LargePrice     decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		MinOrderAmount:  decimal.NewFromInt(DefaultMinOrderAmount),
		MaxOrderAmount:  decimal.NewFromInt(DefaultMaxOrderAmount),
		Currency:        DefaultCurrency,
		MaxLineQuantity: DefaultMaxLineQuantity,
		RequireEmail:   true,
		RequirePhone:   true,
		BakeryCategory: DefaultBakeryCategory,
		SmallVariation: DefaultSmallVariation,
		SmallPrice:     defaultSmallPrice,
		LargePrice:     defaultLargePrice,
	}
}

// VariationPrice reports the fixed size price for a catalog category and a
// selected variation. ok is false when the catalog price applies.
func (p Policy) VariationPrice(category, variation string) (price decimal.Decimal, ok bool) {
	variation = strings.TrimSpace(variation)
	if p.BakeryCategory == "" || category != p.BakeryCategory || variation == "" {
		return decimal.Zero, false
	}
	if variation == p.SmallVariation {
		return p.SmallPrice, true
	}
	return p.LargePrice, true
}
