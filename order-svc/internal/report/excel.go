package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Orders"

func RenderExcel(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, err
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(t.Header), 1)
	if err := f.SetCellStyle(excelSheet, "A1", lastHeader, bold); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(excelSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	for _, m := range t.Merges {
		top, _ := excelize.CoordinatesToCellName(m.Column+1, m.FirstRow+2)
		bottom, _ := excelize.CoordinatesToCellName(m.Column+1, m.LastRow+2)
		if err := f.MergeCell(excelSheet, top, bottom); err != nil {
			return nil, fmt.Errorf("merge %s:%s: %w", top, bottom, err)
		}
	}

	if len(t.Header) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Header))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(excelSheet, "A", last, 18); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
