package report

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"cafeteria-orders/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func reportOrders() []domain.Order {
	return []domain.Order{
		{
			ID:           "7f1c2a9e-3a55-4a9e-9c1c-0a4b2b8e1d10",
			CustomerName: "Dana", CustomerEmail: "dana@example.com", CustomerPhone: "050",
			TotalAmount: decimal.RequireFromString("40.80"), Status: domain.StatusPending, OrderDate: "2026-10-15",
			Items: []domain.OrderItem{
				{Name: "Pizza", Quantity: 1, Price: decimal.RequireFromString("20.5"), SelectedAddons: []string{"olives", "corn"}, SpecialInstructions: "hot"},
				{Name: "Croissant", Quantity: 2, Price: decimal.RequireFromString("4.50"), SelectedVariation: "small"},
				{Name: "Water", Quantity: 1, Price: decimal.RequireFromString("11.30")},
			},
		},
		{
			ID:           "0b9d4c11-aaaa-4bbb-8ccc-dddddddddddd",
			CustomerName: "Noa", CustomerEmail: "noa@example.com", CustomerPhone: "052",
			TotalAmount: decimal.RequireFromString("25"), Status: domain.StatusCompleted, OrderDate: "2026-10-15",
			Items: []domain.OrderItem{{Name: "Toast", Quantity: 1, Price: decimal.RequireFromString("25")}},
		},
		{ID: "e3", CustomerName: "Empty", CustomerPhone: "053", TotalAmount: decimal.Zero, Status: domain.StatusCancelled, OrderDate: "2026-10-15"},
	}
}

func TestBuildOrderTable(t *testing.T) {
	table := BuildOrderTable("Orders", reportOrders())

	require.Len(t, table.Header, 13)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, []string{
		"7f1c2a9e", "Dana", "dana@example.com", "050", "Pizza", "1", "20.50", "20.50",
		"olives, corn", "hot", "40.80", "pending", "2026-10-15",
	}, table.Rows[0])
	assert.Equal(t, "Croissant (small)", table.Rows[1][ColItem])
	assert.Equal(t, "4.50", table.Rows[1][ColPrice])
	assert.Equal(t, "9.00", table.Rows[1][ColSubtotal])
	assert.Equal(t, "completed", table.Rows[3][ColStatus])
	assert.Equal(t, []string{
		"e3", "Empty", "", "053", "", "", "", "", "", "", "0.00", "cancelled", "2026-10-15",
	}, table.Rows[4])

	assert.Equal(t, []Merge{
		{Column: ColOrder, FirstRow: 0, LastRow: 2},
		{Column: ColCustomer, FirstRow: 0, LastRow: 2},
		{Column: ColEmail, FirstRow: 0, LastRow: 2},
		{Column: ColPhone, FirstRow: 0, LastRow: 2},
		{Column: ColTotal, FirstRow: 0, LastRow: 2},
		{Column: ColStatus, FirstRow: 0, LastRow: 2},
		{Column: ColDate, FirstRow: 0, LastRow: 2},
	}, table.Merges)

	merged, first := table.MergeAt(0, ColCustomer)
	assert.True(t, merged)
	assert.True(t, first)
	merged, first = table.MergeAt(2, ColTotal)
	assert.True(t, merged)
	assert.False(t, first)
	merged, _ = table.MergeAt(1, ColItem)
	assert.False(t, merged)
	merged, _ = table.MergeAt(1, ColSubtotal)
	assert.False(t, merged)
	merged, _ = table.MergeAt(3, ColCustomer)
	assert.False(t, merged)
}

func TestBuildOrderTable_NoOrders(t *testing.T) {
	table := BuildOrderTable("Orders", nil)
	assert.Empty(t, table.Rows)
	assert.Empty(t, table.Merges)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"excel", "word", "pdf"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "orders-2026-10-14-2026-10-15.xlsx", Filename("2026-10-14", "2026-10-15", FormatExcel))
	assert.Equal(t, "orders-all-2026-10-15.pdf", Filename("", "2026-10-15", FormatPDF))
}

func TestRenderExcel(t *testing.T) {
	data, err := RenderExcel(BuildOrderTable("Orders", reportOrders()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(excelSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "7f1c2a9e", v)

	v, err = f.GetCellValue(excelSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Dana", v)

	v, err = f.GetCellValue(excelSheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "Croissant (small)", v)

	v, err = f.GetCellValue(excelSheet, "K2")
	require.NoError(t, err)
	assert.Equal(t, "40.80", v)

	merges, err := f.GetMergeCells(excelSheet)
	require.NoError(t, err)
	assert.Len(t, merges, 7)

	width, err := f.GetColWidth(excelSheet, "M")
	require.NoError(t, err)
	assert.Equal(t, 18.0, width)
}

func TestRenderWord(t *testing.T) {
	data, err := RenderWord(BuildOrderTable("Orders & more", reportOrders()))
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body = string(raw)
	}

	assert.Contains(t, body, "Orders &amp; more")
	assert.Contains(t, body, `<w:vMerge w:val="restart"/>`)
	assert.Contains(t, body, "Croissant (small)")
}

func TestRenderer_PDF(t *testing.T) {
	data, err := NewRenderer("").Render(BuildOrderTable("Orders", reportOrders()), FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer("").Render(Table{}, Format("csv"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
