package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrStatusTransition  = errors.New("order status cannot change")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrNoOrders          = errors.New("no orders found")
	ErrWeekendDelivery   = errors.New("cannot send arrival emails on Friday or Saturday")
	ErrNoSupplierAddress = errors.New("no supplier email configured")
)

const dateLayout = "2006-01-02"

// parseDate accepts "" (no filter) or a calendar date.
func parseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	return err
}

func checkOrderID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrOrderNotFound
	}
	return nil
}
