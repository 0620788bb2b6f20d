// Package stats computes the dashboard aggregates: per-entity counts with
// period-over-period trend, a combined hourly activity signal, and a trailing
// 12-month series for charting.
package stats

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// EntityStats is the point-in-time count summary of one entity type.
type EntityStats struct {
	Total            int64   `json:"total"`
	LastMonth        int64   `json:"last_month"`
	LastWeek         int64   `json:"last_week"`
	PercentageChange float64 `json:"percentage_change"`
	Trend            string  `json:"trend"`
}

// ActivityStats is the combined creation activity of the trailing hour.
type ActivityStats struct {
	Total        int64 `json:"total"`
	Users        int64 `json:"users"`
	Blogs        int64 `json:"blogs"`
	Products     int64 `json:"products"`
	PreviousHour int64 `json:"previous_hour"`
	Change       int64 `json:"change"`
}

// Dataset is one line of the overview chart.
type Dataset struct {
	Name string  `json:"name"`
	Data []int64 `json:"data"`
}

// Overview is the 12-month creation series per entity type, oldest first.
type Overview struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Snapshot bundles the per-entity stats and the activity signal.
type Snapshot struct {
	Users    EntityStats   `json:"users"`
	Blogs    EntityStats   `json:"blogs"`
	Products EntityStats   `json:"products"`
	Activity ActivityStats `json:"activity"`
}

// RecentItem is one entry of the recent-activity feed.
type RecentItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// RecentActivity lists the latest created rows per entity type.
type RecentActivity struct {
	Users    []RecentItem `json:"users"`
	Blogs    []RecentItem `json:"blogs"`
	Products []RecentItem `json:"products"`
}

// PercentChange computes the period-over-period change, rounded to one
// decimal. A zero previous period maps to 100 when the current period is
// nonzero (full-scale increase) and 0 when both are zero. The zero-to-zero
// case therefore reports a non-negative change and an "up" trend.
func PercentChange(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	change := (float64(current-previous) / float64(previous)) * 100
	return math.Round(change*10) / 10
}

// TrendLabel maps a percentage change to its directional label.
func TrendLabel(percentageChange float64) string {
	if percentageChange >= 0 {
		return "up"
	}
	return "down"
}

// Aggregator computes dashboard statistics from the relational store.
type Aggregator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAggregator creates an aggregator reading from db.
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db, now: time.Now}
}

func (a *Aggregator) countSince(ctx context.Context, model interface{}, since time.Time) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(model).
		Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (a *Aggregator) countBetween(ctx context.Context, model interface{}, from, to time.Time) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(model).
		Where("created_at >= ? AND created_at < ?", from, to).Count(&n).Error
	return n, err
}

// entityStats computes the count summary for one model over trailing-day
// windows: 7 days, 30 days, and the [60d, 30d) comparison window.
func (a *Aggregator) entityStats(ctx context.Context, model interface{}) (EntityStats, error) {
	now := a.now()

	var stats EntityStats
	if err := a.db.WithContext(ctx).Model(model).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	var err error
	if stats.LastWeek, err = a.countSince(ctx, model, now.AddDate(0, 0, -7)); err != nil {
		return stats, err
	}
	if stats.LastMonth, err = a.countSince(ctx, model, now.AddDate(0, 0, -30)); err != nil {
		return stats, err
	}
	twoMonthsAgo, err := a.countBetween(ctx, model, now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))
	if err != nil {
		return stats, err
	}

	stats.PercentageChange = PercentChange(stats.LastMonth, twoMonthsAgo)
	stats.Trend = TrendLabel(stats.PercentageChange)
	return stats, nil
}

// Stats computes the full dashboard snapshot.
func (a *Aggregator) Stats(ctx context.Context) (*Snapshot, error) {
	var snapshot Snapshot
	var err error

	if snapshot.Users, err = a.entityStats(ctx, &domain.User{}); err != nil {
		return nil, err
	}
	if snapshot.Blogs, err = a.entityStats(ctx, &domain.Blog{}); err != nil {
		return nil, err
	}
	if snapshot.Products, err = a.entityStats(ctx, &domain.Product{}); err != nil {
		return nil, err
	}
	if snapshot.Activity, err = a.activity(ctx); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (a *Aggregator) activity(ctx context.Context) (ActivityStats, error) {
	now := a.now()
	lastHour := now.Add(-time.Hour)
	twoHoursAgo := now.Add(-2 * time.Hour)

	var stats ActivityStats
	var err error
	if stats.Users, err = a.countSince(ctx, &domain.User{}, lastHour); err != nil {
		return stats, err
	}
	if stats.Blogs, err = a.countSince(ctx, &domain.Blog{}, lastHour); err != nil {
		return stats, err
	}
	if stats.Products, err = a.countSince(ctx, &domain.Product{}, lastHour); err != nil {
		return stats, err
	}
	stats.Total = stats.Users + stats.Blogs + stats.Products

	for _, model := range []interface{}{&domain.User{}, &domain.Blog{}, &domain.Product{}} {
		n, err := a.countBetween(ctx, model, twoHoursAgo, lastHour)
		if err != nil {
			return stats, err
		}
		stats.PreviousHour += n
	}
	stats.Change = stats.Total - stats.PreviousHour
	return stats, nil
}

// Overview computes the trailing 12-calendar-month creation series.
func (a *Aggregator) Overview(ctx context.Context) (*Overview, error) {
	now := a.now()

	type window struct {
		label      string
		start, end time.Time
	}
	windows := make([]window, 0, 12)
	for monthsAgo := 11; monthsAgo >= 0; monthsAgo-- {
		ref := now.AddDate(0, -monthsAgo, 0)
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		windows = append(windows, window{
			label: start.Format("Jan 2006"),
			start: start,
			end:   start.AddDate(0, 1, 0),
		})
	}

	overview := &Overview{Labels: make([]string, 0, len(windows))}
	for _, w := range windows {
		overview.Labels = append(overview.Labels, w.label)
	}

	series := []struct {
		name  string
		model interface{}
	}{
		{"Users", &domain.User{}},
		{"Blogs", &domain.Blog{}},
		{"Products", &domain.Product{}},
	}
	for _, s := range series {
		data := make([]int64, 0, len(windows))
		for _, w := range windows {
			n, err := a.countBetween(ctx, s.model, w.start, w.end)
			if err != nil {
				return nil, err
			}
			data = append(data, n)
		}
		overview.Datasets = append(overview.Datasets, Dataset{Name: s.name, Data: data})
	}
	return overview, nil
}

// Recent lists the five latest created rows per entity type.
func (a *Aggregator) Recent(ctx context.Context) (*RecentActivity, error) {
	recent := &RecentActivity{}

	var users []domain.User
	if err := a.db.WithContext(ctx).Order("created_at DESC").Limit(5).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		recent.Users = append(recent.Users, RecentItem{
			ID: u.ID, Title: u.Name, Type: "user",
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	var blogs []domain.Blog
	if err := a.db.WithContext(ctx).Order("created_at DESC").Limit(5).Find(&blogs).Error; err != nil {
		return nil, err
	}
	for _, b := range blogs {
		recent.Blogs = append(recent.Blogs, RecentItem{
			ID: b.ID, Title: b.Title, Type: "blog",
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		})
	}

	var products []domain.Product
	if err := a.db.WithContext(ctx).Order("created_at DESC").Limit(5).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		recent.Products = append(recent.Products, RecentItem{
			ID: p.ID, Title: p.Name, Type: "product",
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return recent, nil
}
