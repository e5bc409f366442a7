package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogEntry is the server-trusted view of a menu item that pricing needs.
type CatalogEntry struct {
	ID         string          `json:"id"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category"`
	Variations []string        `json:"variations,omitempty"`
}

// Lookup is the tagged result of a catalog lookup: Found(entry) or NotFound.
type Lookup struct {
	Found bool
	Entry CatalogEntry
}

func Found(entry CatalogEntry) Lookup {
	return Lookup{Found: true, Entry: entry}
}

func NotFound() Lookup {
	return Lookup{}
}

// Catalog resolves catalog entries by item id. A returned error means the
// catalog could not be reached; a missing item is reported as NotFound.
type Catalog interface {
	Lookup(ctx context.Context, itemID string) (Lookup, error)
}

// CatalogFunc adapts a plain function to the Catalog interface.
type CatalogFunc func(ctx context.Context, itemID string) (Lookup, error)

func (f CatalogFunc) Lookup(ctx context.Context, itemID string) (Lookup, error) {
	return f(ctx, itemID)
}
