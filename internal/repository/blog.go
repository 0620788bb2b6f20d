package repository

import (
	"context"
	"strings"

	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// BlogRepository handles blog data access.
type BlogRepository interface {
	List(ctx context.Context, q ListQuery) ([]domain.Blog, int64, error)
	Latest(ctx context.Context, limit int) ([]domain.Blog, error)
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)
	Related(ctx context.Context, blog *domain.Blog, limit int) ([]domain.Blog, error)
	IDs(ctx context.Context) ([]int64, error)
	Create(ctx context.Context, blog *domain.Blog) error
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id int64) error
}

// relatedStopwords are excluded from keyword matching.
var relatedStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "is": true, "are": true, "was": true, "were": true,
}

// TitleKeywords extracts the matchable words of a blog title: lowercased,
// longer than two characters, stopwords removed.
func TitleKeywords(title string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) > 2 && !relatedStopwords[w] {
			words = append(words, w)
		}
	}
	return words
}

// GormBlogRepository is the GORM implementation of BlogRepository.
type GormBlogRepository struct {
	db  *gorm.DB
	bus EventBus.Bus
}

// NewGormBlogRepository creates a new GORM-based blog repository.
func NewGormBlogRepository(db *gorm.DB, bus EventBus.Bus) *GormBlogRepository {
	return &GormBlogRepository{db: db, bus: bus}
}

func (r *GormBlogRepository) List(ctx context.Context, q ListQuery) ([]domain.Blog, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Blog{})
	if q.Search != "" {
		pattern := searchPattern(q.Search)
		db = db.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Blog
	db = applySort(db, q.SortBy, q.SortOrder, map[string]bool{
		"created_at": true, "updated_at": true, "title": true,
	})
	if err := db.Offset(q.Offset()).Limit(q.PerPage).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormBlogRepository) Latest(ctx context.Context, limit int) ([]domain.Blog, error) {
	var rows []domain.Blog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *GormBlogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// Related scores other blogs by shared title keywords against their title and
// content, newest first. Falls back to the latest blogs excluding the source
// when no keyword matches.
func (r *GormBlogRepository) Related(ctx context.Context, blog *domain.Blog, limit int) ([]domain.Blog, error) {
	words := TitleKeywords(blog.Title)
	if len(words) > 0 {
		conds := make([]string, 0, len(words))
		args := make([]interface{}, 0, len(words)*2)
		for _, w := range words {
			pattern := searchPattern(w)
			conds = append(conds, "LOWER(title) LIKE ? OR LOWER(content) LIKE ?")
			args = append(args, pattern, pattern)
		}
		var rows []domain.Blog
		err := r.db.WithContext(ctx).Where("id != ?", blog.ID).
			Where("("+strings.Join(conds, " OR ")+")", args...).
			Order("created_at DESC").Limit(limit).Find(&rows).Error
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}

	var rows []domain.Blog
	err := r.db.WithContext(ctx).Where("id != ?", blog.ID).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *GormBlogRepository) IDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Blog{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *GormBlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityBlog, "created"), blog.ID)
	return nil
}

func (r *GormBlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityBlog, "updated"), blog.ID)
	return nil
}

func (r *GormBlogRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Blog{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityBlog, "deleted"), id)
	return nil
}
