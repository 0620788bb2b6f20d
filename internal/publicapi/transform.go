package publicapi

import (
	"time"
	"unicode/utf8"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

const excerptLength = 150

// Excerpt truncates content to 150 characters with a "..." suffix. Content at
// or under the boundary passes through unchanged.
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= excerptLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:excerptLength]) + "..."
}

// BlogView is the public list/latest projection of a blog.
type BlogView struct {
	ID        int64    `json:"id,string"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Images    []string `json:"images"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// BlogDetailView is the public detail projection with full content.
type BlogDetailView struct {
	ID        int64    `json:"id,string"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Images    []string `json:"images"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ProductView is the public projection of a product.
type ProductView struct {
	ID               int64    `json:"id,string"`
	Name             string   `json:"name"`
	ProductType      string   `json:"product_type"`
	ProductTypeLabel string   `json:"product_type_label"`
	Description      string   `json:"description"`
	Excerpt          string   `json:"excerpt"`
	Images           []string `json:"images"`
	Features         []string `json:"features"`
	IsFeatured       bool     `json:"is_featured"`
	PrincipalID      *int64   `json:"principal_id,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// PrincipalView is the public projection of a principal.
type PrincipalView struct {
	ID          int64  `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	IsFeatured  bool   `json:"is_featured"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// AnnouncementView is the public projection of an announcement.
type AnnouncementView struct {
	ID          int64  `json:"id,string"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (a *PublicAPI) blogView(b *domain.Blog) BlogView {
	return BlogView{
		ID:        b.ID,
		Title:     b.Title,
		Excerpt:   Excerpt(b.Content),
		Images:    a.disk.URLs(b.Images),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func (a *PublicAPI) blogViews(blogs []domain.Blog) []BlogView {
	views := make([]BlogView, 0, len(blogs))
	for i := range blogs {
		views = append(views, a.blogView(&blogs[i]))
	}
	return views
}

func (a *PublicAPI) blogDetailView(b *domain.Blog) BlogDetailView {
	return BlogDetailView{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Images:    a.disk.URLs(b.Images),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func (a *PublicAPI) productView(p *domain.Product) ProductView {
	return ProductView{
		ID:               p.ID,
		Name:             p.Name,
		ProductType:      string(p.ProductType),
		ProductTypeLabel: p.ProductType.DisplayName(),
		Description:      p.Description,
		Excerpt:          Excerpt(p.Description),
		Images:           a.disk.URLs(p.Images),
		Features:         p.Features,
		IsFeatured:       p.IsFeatured,
		PrincipalID:      p.PrincipalID,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}

func (a *PublicAPI) productViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, a.productView(&products[i]))
	}
	return views
}

func (a *PublicAPI) principalView(p *domain.Principal) PrincipalView {
	return PrincipalView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Logo:        a.disk.URL(p.Logo),
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func (a *PublicAPI) principalViews(principals []domain.Principal) []PrincipalView {
	views := make([]PrincipalView, 0, len(principals))
	for i := range principals {
		views = append(views, a.principalView(&principals[i]))
	}
	return views
}

func announcementView(an *domain.Announcement) AnnouncementView {
	return AnnouncementView{
		ID:          an.ID,
		Title:       an.Title,
		Description: an.Description,
		Excerpt:     Excerpt(an.Description),
		CreatedAt:   an.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   an.UpdatedAt.Format(time.RFC3339),
	}
}

func announcementViews(items []domain.Announcement) []AnnouncementView {
	views := make([]AnnouncementView, 0, len(items))
	for i := range items {
		views = append(views, announcementView(&items[i]))
	}
	return views
}
