package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// TTLs per endpoint class. Longer TTLs for more expensive, rarely-changing
// derived queries.
const (
	TTLList      = 300 * time.Second
	TTLLatest    = 600 * time.Second
	TTLRelated   = 900 * time.Second
	TTLDashboard = 300 * time.Second
	TTLHero      = 3600 * time.Second
)

// Fixed dashboard and principal keys.
const (
	KeyDashboardStats          = "dashboard_stats"
	KeyDashboardOverview       = "dashboard_overview"
	KeyDashboardRecentActivity = "dashboard_recent_activity"
	KeyPrincipals              = "principals_api_v1"
	KeyPrincipalsFeatured      = "principals_featured_api_v1"
	KeyHeroBackgrounds         = "hero_backgrounds_frontend"
)

// MaxLatestLimit bounds the limit parameter of latest/featured endpoints and
// therefore the key set the invalidator enumerates.
const MaxLatestLimit = 50

// ListParams is the effective, post-default-substitution parameter set of a
// paginated list query. Defaults must be substituted before key derivation so
// that omitted and explicit-default parameters hash identically.
type ListParams struct {
	Search      string
	ProductType string
	PerPage     int
	Page        int
	SortBy      string
	SortOrder   string
}

// ListKey derives the deterministic cache key of a list query. The parameter
// permutation space is unenumerable, hence list keys can only be dropped by a
// full flush.
func ListKey(prefix string, p ListParams) string {
	var b strings.Builder
	b.WriteString("search=")
	b.WriteString(p.Search)
	b.WriteString("&product_type=")
	b.WriteString(p.ProductType)
	b.WriteString("&perPage=")
	b.WriteString(strconv.Itoa(p.PerPage))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(p.Page))
	b.WriteString("&sortBy=")
	b.WriteString(p.SortBy)
	b.WriteString("&sortOrder=")
	b.WriteString(p.SortOrder)
	return fmt.Sprintf("%s_api_%016x", prefix, xxhash.Sum64String(b.String()))
}

// LatestKey is the cache key of a latest-N query.
func LatestKey(prefix string, limit int) string {
	return fmt.Sprintf("%s_latest_%d", prefix, limit)
}

// FeaturedKey is the cache key of a featured-N query.
func FeaturedKey(prefix string, limit int) string {
	return fmt.Sprintf("%s_featured_%d", prefix, limit)
}

// ShowKey is the cache key of a detail endpoint.
func ShowKey(entity string, id int64) string {
	return fmt.Sprintf("%s_show_api_%d", entity, id)
}

// RelatedKey is the cache key of a related-items endpoint.
func RelatedKey(entity string, id int64) string {
	return fmt.Sprintf("%s_related_%d", entity, id)
}

// PrincipalProductsKey is the cache key of a principal's product listing.
func PrincipalProductsKey(id int64) string {
	return fmt.Sprintf("principal_%d_products", id)
}
