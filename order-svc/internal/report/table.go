package report

import (
	"strconv"
	"strings"

	"cafeteria-orders/order-svc/internal/domain"
)

// Columns of the order table.
const (
	ColOrder = iota
	ColCustomer
	ColEmail
	ColPhone
	ColItem
	ColQuantity
	ColPrice
	ColSubtotal
	ColAddons
	ColInstructions
	ColTotal
	ColStatus
	ColDate
)

var orderHeader = []string{
	"Order", "Customer", "Email", "Phone", "Item", "Qty", "Price", "Subtotal",
	"Add-ons", "Instructions", "Total", "Status", "Date",
}

// Columns that carry per-order values and are merged across an order's lines.
var orderMergedColumns = []int{ColOrder, ColCustomer, ColEmail, ColPhone, ColTotal, ColStatus, ColDate}

// Merge spans data rows FirstRow..LastRow (inclusive, zero based) of one column.
type Merge struct {
	Column   int
	FirstRow int
	LastRow  int
}

type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Merges []Merge
}

// MergeAt reports whether the cell is covered by a merge and whether it is
// the first cell of it.
func (t Table) MergeAt(row, col int) (merged, first bool) {
	for _, m := range t.Merges {
		if m.Column == col && row >= m.FirstRow && row <= m.LastRow {
			return true, row == m.FirstRow
		}
	}
	return false, false
}

// BuildOrderTable lays out one row per order line. An order without lines
// still gets a row so it shows up in the report.
func BuildOrderTable(title string, orders []domain.Order) Table {
	t := Table{Title: title, Header: orderHeader}

	for _, order := range orders {
		first := len(t.Rows)
		if len(order.Items) == 0 {
			t.Rows = append(t.Rows, orderRow(order, nil))
			continue
		}
		for i := range order.Items {
			t.Rows = append(t.Rows, orderRow(order, &order.Items[i]))
		}
		if last := len(t.Rows) - 1; last > first {
			for _, col := range orderMergedColumns {
				t.Merges = append(t.Merges, Merge{Column: col, FirstRow: first, LastRow: last})
			}
		}
	}
	return t
}

func orderRow(order domain.Order, item *domain.OrderItem) []string {
	row := make([]string, len(orderHeader))
	row[ColOrder] = domain.ShortID(order.ID)
	row[ColCustomer] = order.CustomerName
	row[ColEmail] = order.CustomerEmail
	row[ColPhone] = order.CustomerPhone
	row[ColTotal] = order.TotalAmount.StringFixed(2)
	row[ColStatus] = string(order.Status)
	row[ColDate] = order.OrderDate
	if item == nil {
		return row
	}

	row[ColItem] = item.Name
	if item.SelectedVariation != "" {
		row[ColItem] += " (" + item.SelectedVariation + ")"
	}
	row[ColQuantity] = strconv.Itoa(item.Quantity)
	row[ColPrice] = item.Price.StringFixed(2)
	row[ColSubtotal] = item.Subtotal().StringFixed(2)
	row[ColAddons] = strings.Join(item.SelectedAddons, ", ")
	row[ColInstructions] = item.SpecialInstructions
	return row
}
