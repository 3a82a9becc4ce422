package service

import (
	"context"
	"log"
	"time"

	"bistro-booking/api-svc/internal/domain"
)

const DefaultTopLimit = 5

type AnalyticsServiceInterface interface {
	TopToday(ctx context.Context, limit int) ([]domain.SalesStat, error)
	TopAllTime(ctx context.Context, limit int) ([]domain.SalesStat, error)
}

// AnalyticsService reads best sellers from the Redis counters and falls back to SQL
// aggregation when the counters are empty or unreachable.
type AnalyticsService struct {
	counter SalesCounter
	orders  OrderRepository
	menu    MenuRepository
	loc     *time.Location
	now     func() time.Time
}

func NewAnalyticsService(counter SalesCounter, orders OrderRepository, menu MenuRepository, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{counter: counter, orders: orders, menu: menu, loc: loc, now: time.Now}
}

func (s *AnalyticsService) TopToday(ctx context.Context, limit int) ([]domain.SalesStat, error) {
	now := s.now().In(s.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return s.top(ctx, now.Format("2006-01-02"), &startOfDay, limit)
}

func (s *AnalyticsService) TopAllTime(ctx context.Context, limit int) ([]domain.SalesStat, error) {
	return s.top(ctx, "", nil, limit)
}

func (s *AnalyticsService) top(ctx context.Context, day string, since *time.Time, limit int) ([]domain.SalesStat, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	if s.counter != nil {
		stats, err := s.counter.Top(ctx, day, limit)
		if err != nil {
			log.Printf("WARNING: sales counter unavailable, using database: %v", err)
		}
		if err == nil && len(stats) > 0 {
			return s.withTitles(ctx, stats)
		}
	}

	stats, err := s.orders.TopSellingItems(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []domain.SalesStat{}
	}
	return stats, nil
}

func (s *AnalyticsService) withTitles(ctx context.Context, stats []domain.SalesStat) ([]domain.SalesStat, error) {
	ids := make([]int, 0, len(stats))
	for _, stat := range stats {
		ids = append(ids, stat.MenuItemID)
	}
	items, err := s.menu.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		if item, ok := items[stats[i].MenuItemID]; ok {
			stats[i].Title = item.Title
		}
	}
	return stats, nil
}

var _ AnalyticsServiceInterface = (*AnalyticsService)(nil)
