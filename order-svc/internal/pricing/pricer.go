// Package pricing turns an untrusted cart into an authoritative priced order
// or rejects it. Prices always come from the catalog when the catalog knows
// the item; the client-supplied price is used only as a per-line fallback.
package pricing

import (
	"context"
	"log/slog"
	"strings"

	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/metrics"

	"github.com/shopspring/decimal"
)

// CartLine is one client-submitted line. Nothing in it is trusted.
type CartLine struct {
	ItemID              string          `json:"id"`
	Name                string          `json:"name"`
	Quantity            decimal.Decimal `json:"quantity"`
	ClientPrice         decimal.Decimal `json:"price"`
	SelectedAddons      []string        `json:"selectedAddons,omitempty"`
	SelectedVariation   string          `json:"selectedVariation,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

type Cart struct {
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Items         []CartLine `json:"items"`
}

type PriceSource string

const (
	SourceCatalog   PriceSource = "catalog"
	SourceVariation PriceSource = "variation"
	SourceClient    PriceSource = "client"
)

// ValidatedLine carries the cart line through unchanged except for the
// price, which is the resolved one.
type ValidatedLine struct {
	ItemID              string
	Name                string
	Quantity            int
	Price               decimal.Decimal
	Source              PriceSource
	SelectedAddons      []string
	SelectedVariation   string
	SpecialInstructions string
}

func (l ValidatedLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quote is an accepted cart: trimmed contact fields, lines in cart order and
// the total computed from resolved prices.
type Quote struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Lines         []ValidatedLine
	Total         decimal.Decimal
}

type Pricer struct {
	catalog Catalog
	policy  Policy
	logger  *slog.Logger
}

func NewPricer(catalog Catalog, policy Policy, logger *slog.Logger) *Pricer {
	if logger == nil {
		logger = logging.New("pricing")
	}
	return &Pricer{catalog: catalog, policy: policy, logger: logger}
}

func (p *Pricer) Policy() Policy {
	return p.policy
}

// Quote validates cart and prices it. Rejections are *RejectionError values
// wrapping ErrInvalidInput or ErrBelowMinimum.
func (p *Pricer) Quote(ctx context.Context, cart Cart) (*Quote, error) {
	quote := &Quote{
		CustomerName:  strings.TrimSpace(cart.CustomerName),
		CustomerEmail: strings.TrimSpace(cart.CustomerEmail),
		CustomerPhone: strings.TrimSpace(cart.CustomerPhone),
	}

	if p.policy.RequireEmail && quote.CustomerEmail == "" {
		return nil, invalid("Email is required")
	}
	if p.policy.RequirePhone && quote.CustomerPhone == "" {
		return nil, invalid("Phone is required")
	}
	if len(cart.Items) == 0 {
		return nil, invalid("Order must contain at least one item")
	}

	quantities := make([]int, len(cart.Items))
	for i, line := range cart.Items {
		q, err := p.checkLine(i, line)
		if err != nil {
			return nil, err
		}
		quantities[i] = q
	}

	// Repeated ids in one cart hit the catalog once.
	seen := make(map[string]Lookup, len(cart.Items))
	quote.Lines = make([]ValidatedLine, 0, len(cart.Items))
	total := decimal.Zero
	for i, line := range cart.Items {
		itemID := strings.TrimSpace(line.ItemID)
		res, ok := seen[itemID]
		if !ok {
			res = p.lookup(ctx, itemID)
			seen[itemID] = res
		}

		price, source := p.resolve(res, line)
		// Stored lines and the stored total must add up.
		price = price.Round(CurrencyScale)
		if source == SourceClient {
			metrics.PriceFallbacks.Inc()
			p.logger.Warn("using client price",
				"item_id", itemID, "name", line.Name, "price", price.String())
		} else if !price.Equal(line.ClientPrice) {
			p.logger.Info("price corrected",
				"item_id", itemID, "client_price", line.ClientPrice.String(),
				"price", price.String(), "source", string(source))
		}

		validated := ValidatedLine{
			ItemID:              itemID,
			Name:                line.Name,
			Quantity:            quantities[i],
			Price:               price,
			Source:              source,
			SelectedAddons:      line.SelectedAddons,
			SelectedVariation:   strings.TrimSpace(line.SelectedVariation),
			SpecialInstructions: strings.TrimSpace(line.SpecialInstructions),
		}
		total = total.Add(validated.Subtotal())
		quote.Lines = append(quote.Lines, validated)
	}
	quote.Total = total

	if p.policy.MaxOrderAmount.IsPositive() && total.GreaterThan(p.policy.MaxOrderAmount) {
		return nil, invalid("Order total must not exceed %s %s", p.policy.MaxOrderAmount.String(), p.policy.Currency)
	}
	if total.LessThan(p.policy.MinOrderAmount) {
		return nil, &RejectionError{
			Kind:   ErrBelowMinimum,
			Reason: "Minimum order amount is " + p.policy.MinOrderAmount.String() + " " + p.policy.Currency,
		}
	}
	return quote, nil
}

func (p *Pricer) checkLine(index int, line CartLine) (int, error) {
	if strings.TrimSpace(line.ItemID) == "" {
		return 0, invalid("items[%d]: item id is required", index)
	}
	if !line.Quantity.IsInteger() || !line.Quantity.IsPositive() {
		return 0, invalid("items[%d]: quantity must be a positive integer", index)
	}
	// Bounded before IntPart, which wraps outside int64.
	limit := p.policy.MaxLineQuantity
	if limit <= 0 {
		limit = DefaultMaxLineQuantity
	}
	if line.Quantity.GreaterThan(decimal.NewFromInt(limit)) {
		return 0, invalid("items[%d]: quantity must not exceed %d", index, limit)
	}
	if line.ClientPrice.IsNegative() {
		return 0, invalid("items[%d]: price must not be negative", index)
	}
	return int(line.Quantity.IntPart()), nil
}

// lookup never fails: an unreachable catalog degrades to NotFound so the
// line is priced from the cart.
func (p *Pricer) lookup(ctx context.Context, itemID string) Lookup {
	res, err := p.catalog.Lookup(ctx, itemID)
	if err != nil {
		p.logger.Error("catalog lookup failed",
			"item_id", itemID, "error", ErrCatalogLookupFailed.Error(), "cause", err.Error())
		return NotFound()
	}
	return res
}

func (p *Pricer) resolve(res Lookup, line CartLine) (decimal.Decimal, PriceSource) {
	if !res.Found {
		return line.ClientPrice, SourceClient
	}
	if price, ok := p.policy.VariationPrice(res.Entry.Category, line.SelectedVariation); ok {
		return price, SourceVariation
	}
	return res.Entry.Price, SourceCatalog
}
