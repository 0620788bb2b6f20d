package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func newBlog(id int64, title, content string, createdAt time.Time) *domain.Blog {
	return &domain.Blog{
		ID: id, Title: title, Content: content,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	}
}

func TestTitleKeywords(t *testing.T) {
	words := repository.TitleKeywords("The Future of Oxygen Concentrators")
	assert.Equal(t, []string{"future", "oxygen", "concentrators"}, words)

	assert.Nil(t, repository.TitleKeywords("a an of"))
	assert.Nil(t, repository.TitleKeywords("is it ok"))
}

func TestBlogListSearchAndSort(t *testing.T) {
	db := testDB(t)
	repo := repository.NewGormBlogRepository(db, EventBus.New())
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(newBlog(1, "Oxygen Masks Explained", "ppe content", base)).Error)
	require.NoError(t, db.Create(newBlog(2, "Ventilator Maintenance", "servicing schedule text", base.Add(time.Hour))).Error)
	require.NoError(t, db.Create(newBlog(3, "Alcohol Wipes", "sanitation with OXYGEN mentions", base.Add(2*time.Hour))).Error)

	t.Run("SearchMatchesTitleOrContentCaseInsensitive", func(t *testing.T) {
		rows, total, err := repo.List(ctx, repository.ListQuery{
			Search: "oxygen", Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(3), rows[0].ID)
		assert.Equal(t, int64(1), rows[1].ID)
	})

	t.Run("SortByTitleAscending", func(t *testing.T) {
		rows, _, err := repo.List(ctx, repository.ListQuery{
			Page: 1, PerPage: 10, SortBy: "title", SortOrder: "asc",
		})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Alcohol Wipes", rows[0].Title)
	})

	t.Run("DisallowedSortFallsBackToNewestFirst", func(t *testing.T) {
		rows, _, err := repo.List(ctx, repository.ListQuery{
			Page: 1, PerPage: 10, SortBy: "password", SortOrder: "asc",
		})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, int64(3), rows[0].ID)
	})

	t.Run("Pagination", func(t *testing.T) {
		rows, total, err := repo.List(ctx, repository.ListQuery{
			Page: 2, PerPage: 2, SortBy: "created_at", SortOrder: "desc",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(1), rows[0].ID)
	})
}

func TestBlogLatestOrdering(t *testing.T) {
	db := testDB(t)
	repo := repository.NewGormBlogRepository(db, EventBus.New())

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, db.Create(newBlog(i, "t", "c", base.Add(time.Duration(i)*time.Hour))).Error)
	}

	rows, err := repo.Latest(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(5), rows[0].ID)
	assert.Equal(t, int64(3), rows[2].ID)
}

func TestBlogRelated(t *testing.T) {
	db := testDB(t)
	repo := repository.NewGormBlogRepository(db, EventBus.New())
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	source := newBlog(1, "Oxygen Concentrator Buying Guide", "...", base)
	require.NoError(t, db.Create(source).Error)
	require.NoError(t, db.Create(newBlog(2, "Portable Oxygen Tips", "...", base.Add(time.Hour))).Error)
	require.NoError(t, db.Create(newBlog(3, "Wheelchair Sizing", "includes concentrator trivia", base.Add(2*time.Hour))).Error)
	require.NoError(t, db.Create(newBlog(4, "Unrelated Topic", "nothing shared", base.Add(3*time.Hour))).Error)

	t.Run("KeywordOverlapNewestFirstExcludingSelf", func(t *testing.T) {
		rows, err := repo.Related(ctx, source, 3)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(3), rows[0].ID)
		assert.Equal(t, int64(2), rows[1].ID)
	})

	t.Run("FallbackToLatestExcludingSelf", func(t *testing.T) {
		lonely := newBlog(5, "Zzz Qqq Xxx", "no overlap", base.Add(4*time.Hour))
		require.NoError(t, db.Create(lonely).Error)

		rows, err := repo.Related(ctx, lonely, 3)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, int64(4), rows[0].ID)
		for _, row := range rows {
			assert.NotEqual(t, lonely.ID, row.ID)
		}
	})
}

func TestBlogMutationsPublishLifecycleEvents(t *testing.T) {
	db := testDB(t)
	bus := EventBus.New()
	repo := repository.NewGormBlogRepository(db, bus)
	ctx := context.Background()

	var events []string
	for _, action := range []string{"created", "updated", "deleted"} {
		action := action
		require.NoError(t, bus.Subscribe(cache.Topic(cache.EntityBlog, action), func(id int64) {
			events = append(events, action)
		}))
	}

	blog := newBlog(1, "t", "c", time.Now())
	require.NoError(t, repo.Create(ctx, blog))
	require.NoError(t, repo.Update(ctx, blog))
	require.NoError(t, repo.Delete(ctx, blog.ID))
	bus.WaitAsync()

	assert.Equal(t, []string{"created", "updated", "deleted"}, events)
}
