package report

import (
	"errors"
	"fmt"
)

var ErrUnknownFormat = errors.New("invalid format")

type Format string

const (
	FormatExcel Format = "excel"
	FormatWord  Format = "word"
	FormatPDF   Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatExcel, FormatWord, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatWord:
		return "docx"
	case FormatPDF:
		return "pdf"
	}
	return "bin"
}

func (f Format) ContentType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatWord:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Filename is orders-<date|all>-<today>.<ext>.
func Filename(date, today string, f Format) string {
	if date == "" {
		date = "all"
	}
	return fmt.Sprintf("orders-%s-%s.%s", date, today, f.Extension())
}

type File struct {
	Filename    string
	ContentType string
	Data        []byte
}
