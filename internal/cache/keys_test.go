package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKeyDeterministic(t *testing.T) {
	p := ListParams{Search: "mask", PerPage: 10, Page: 1, SortBy: "created_at", SortOrder: "desc"}

	assert.Equal(t, ListKey("blogs", p), ListKey("blogs", p))
	assert.NotEqual(t, ListKey("blogs", p), ListKey("products", p))

	q := p
	q.Page = 2
	assert.NotEqual(t, ListKey("blogs", p), ListKey("blogs", q))

	r := p
	r.Search = "Mask"
	assert.NotEqual(t, ListKey("blogs", p), ListKey("blogs", r))
}

func TestListKeyDefaultSubstitution(t *testing.T) {
	// callers substitute defaults before key derivation, so the same
	// effective parameter set yields the same key regardless of how the
	// request spelled it
	defaults := ListParams{PerPage: 10, Page: 1, SortBy: "created_at", SortOrder: "desc"}
	explicit := ListParams{Search: "", PerPage: 10, Page: 1, SortBy: "created_at", SortOrder: "desc"}
	assert.Equal(t, ListKey("blogs", defaults), ListKey("blogs", explicit))
}

func TestFixedKeyFormats(t *testing.T) {
	assert.Equal(t, "blogs_latest_3", LatestKey("blogs", 3))
	assert.Equal(t, "products_featured_6", FeaturedKey("products", 6))
	assert.Equal(t, "blog_show_api_42", ShowKey("blog", 42))
	assert.Equal(t, "blog_related_42", RelatedKey("blog", 42))
	assert.Equal(t, "principal_7_products", PrincipalProductsKey(7))
	assert.Equal(t, "dashboard_stats", KeyDashboardStats)
	assert.Equal(t, "principals_api_v1", KeyPrincipals)
}
