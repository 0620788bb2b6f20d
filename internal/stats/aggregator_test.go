package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous int64
		want     float64
		trend    string
	}{
		{"ZeroPreviousNonzeroCurrent", 5, 0, 100, "up"},
		{"ZeroPreviousZeroCurrent", 0, 0, 0, "up"},
		{"Halved", 5, 10, -50, "down"},
		{"Grew", 15, 10, 50, "up"},
		{"Unchanged", 10, 10, 0, "up"},
		{"RoundedToOneDecimal", 1, 3, -66.7, "down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentChange(tc.current, tc.previous)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.trend, TrendLabel(got))
		})
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedBlog(t *testing.T, db *gorm.DB, id int64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Blog{
		ID: id, Title: "b", Content: "c",
		CreatedAt: createdAt, UpdatedAt: createdAt,
	}).Error)
}

func TestEntityStatsWindows(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	agg := &Aggregator{db: db, now: func() time.Time { return now }}

	// 10 blogs in the comparison window, 5 in the last month, 2 of those in
	// the last week
	for i := int64(1); i <= 10; i++ {
		seedBlog(t, db, i, now.AddDate(0, 0, -45))
	}
	for i := int64(11); i <= 13; i++ {
		seedBlog(t, db, i, now.AddDate(0, 0, -20))
	}
	for i := int64(14); i <= 15; i++ {
		seedBlog(t, db, i, now.AddDate(0, 0, -2))
	}

	stats, err := agg.entityStats(context.Background(), &domain.Blog{})
	require.NoError(t, err)

	assert.Equal(t, int64(15), stats.Total)
	assert.Equal(t, int64(5), stats.LastMonth)
	assert.Equal(t, int64(2), stats.LastWeek)
	assert.Equal(t, float64(-50), stats.PercentageChange)
	assert.Equal(t, "down", stats.Trend)
}

func TestActivityWindows(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	agg := &Aggregator{db: db, now: func() time.Time { return now }}

	seedBlog(t, db, 1, now.Add(-30*time.Minute))
	seedBlog(t, db, 2, now.Add(-40*time.Minute))
	seedBlog(t, db, 3, now.Add(-90*time.Minute))

	snapshot, err := agg.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), snapshot.Activity.Blogs)
	assert.Equal(t, int64(2), snapshot.Activity.Total)
	assert.Equal(t, int64(1), snapshot.Activity.PreviousHour)
	assert.Equal(t, int64(1), snapshot.Activity.Change)
}

func TestOverviewTwelveMonthsOldestFirst(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	agg := &Aggregator{db: db, now: func() time.Time { return now }}

	seedBlog(t, db, 1, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC))
	seedBlog(t, db, 2, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))
	seedBlog(t, db, 3, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	overview, err := agg.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.Labels, 12)
	assert.Equal(t, "Jul 2024", overview.Labels[0])
	assert.Equal(t, "Jun 2025", overview.Labels[11])

	var blogSeries *Dataset
	for i := range overview.Datasets {
		if overview.Datasets[i].Name == "Blogs" {
			blogSeries = &overview.Datasets[i]
		}
	}
	require.NotNil(t, blogSeries)
	require.Len(t, blogSeries.Data, 12)
	assert.Equal(t, int64(1), blogSeries.Data[0])
	assert.Equal(t, int64(2), blogSeries.Data[10])
	assert.Equal(t, int64(0), blogSeries.Data[11])
}

func TestRecentFiveNewestPerType(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	agg := &Aggregator{db: db, now: func() time.Time { return now }}

	for i := int64(1); i <= 7; i++ {
		seedBlog(t, db, i, now.Add(-time.Duration(i)*time.Hour))
	}

	recent, err := agg.Recent(context.Background())
	require.NoError(t, err)

	require.Len(t, recent.Blogs, 5)
	assert.Equal(t, int64(1), recent.Blogs[0].ID)
	assert.Equal(t, "blog", recent.Blogs[0].Type)
	assert.Empty(t, recent.Users)
}
