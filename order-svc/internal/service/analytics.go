package service

import (
	"context"
	"time"

	"cafeteria-orders/order-svc/internal/domain"
)

type AnalyticsService struct {
	stats PopularityStore
	loc   *time.Location

	Now func() time.Time
}

func NewAnalyticsService(stats PopularityStore, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{stats: stats, loc: loc, Now: time.Now}
}

// Popular returns the best sellers of date, today when date is empty.
func (s *AnalyticsService) Popular(ctx context.Context, date string, limit int) ([]domain.PopularItem, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	if date == "" {
		date = s.Now().In(s.loc).Format(dateLayout)
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.stats.TopItems(ctx, date, limit)
}
