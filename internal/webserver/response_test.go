package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(2, 10, 10, 35)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 11, meta.From)
	assert.Equal(t, 20, meta.To)
	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.LastPage)
}

func TestNewPageMetaPartialLastPage(t *testing.T) {
	meta := NewPageMeta(4, 10, 5, 35)
	assert.Equal(t, 31, meta.From)
	assert.Equal(t, 35, meta.To)
	assert.Equal(t, 4, meta.LastPage)
}

func TestNewPageMetaEmptyResult(t *testing.T) {
	meta := NewPageMeta(1, 10, 0, 0)
	assert.Equal(t, 0, meta.From)
	assert.Equal(t, 0, meta.To)
	assert.Equal(t, 1, meta.LastPage)
}

func TestNewPageLinks(t *testing.T) {
	meta := NewPageMeta(2, 10, 10, 35)
	links := NewPageLinks("/api/v1/blogs", meta)
	assert.Equal(t, "/api/v1/blogs?page=1", links.First)
	assert.Equal(t, "/api/v1/blogs?page=4", links.Last)
	assert.Equal(t, "/api/v1/blogs?page=1", links.Prev)
	assert.Equal(t, "/api/v1/blogs?page=3", links.Next)
}

func TestNewPageLinksBoundaryPages(t *testing.T) {
	meta := NewPageMeta(1, 10, 10, 35)
	links := NewPageLinks("/api/v1/blogs", meta)
	assert.Empty(t, links.Prev)
	assert.Equal(t, "/api/v1/blogs?page=2", links.Next)

	meta = NewPageMeta(4, 10, 5, 35)
	links = NewPageLinks("/api/v1/blogs", meta)
	assert.Equal(t, "/api/v1/blogs?page=3", links.Prev)
	assert.Empty(t, links.Next)
}
