// internal/app/system/search/search.go
package search

import (
	"sort"
	"strings"

	"github.com/edunaija/edunaija/internal/domain/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by Select. An unrecognized key leaves the input
// order untouched.
const (
	SortNewest         = "newest"
	SortOldest         = "oldest"
	SortMostViewed     = "mostViewed"
	SortMostDownloaded = "mostDownloaded"
	SortAlphabetical   = "alphabetical"
)

// CategoryAll is the sentinel meaning "no category filter". An empty
// category means the same thing.
const CategoryAll = "all"

// Params is the caller-owned query state: free-text term, category,
// selected tags, and sort key. The zero value selects everything in
// newest-first order.
type Params struct {
	Term     string
	Category string
	Tags     []string
	Sort     string
}

// Select returns the resources that pass every active filter in Params,
// ordered by the active sort key. The result is freshly allocated; the
// input slice is never reordered or written to.
//
// Filters are conjunctive:
//   - Term: case-insensitive substring of the title, the description, or
//     any one tag. Inactive when empty.
//   - Category: exact, case-sensitive match. Inactive when empty or "all".
//   - Tags: every selected tag must be a case-insensitive substring of at
//     least one of the resource's own tags (so "math" selects a resource
//     tagged "mathematics"). Inactive when no tags are selected.
func Select(resources []models.Resource, p Params) []models.Resource {
	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if matches(r, p) {
			out = append(out, r)
		}
	}
	sortResources(out, p.Sort)
	return out
}

func matches(r models.Resource, p Params) bool {
	if term := strings.ToLower(strings.TrimSpace(p.Term)); term != "" {
		if !strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) &&
			!anyTagContains(r.Tags, term) {
			return false
		}
	}

	if p.Category != "" && p.Category != CategoryAll && r.Category != p.Category {
		return false
	}

	for _, want := range p.Tags {
		if !anyTagContains(r.Tags, strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// anyTagContains reports whether any tag contains sub. sub must already be
// lowercase.
func anyTagContains(tags []string, sub string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), sub) {
			return true
		}
	}
	return false
}

// sortResources orders rs in place per key. Every sort is stable so that
// resources with equal keys keep their relative input order.
func sortResources(rs []models.Resource, key string) {
	switch key {
	case SortNewest, "":
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].CreatedAt.After(rs[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].CreatedAt.Before(rs[j].CreatedAt)
		})
	case SortMostViewed:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Views > rs[j].Views
		})
	case SortMostDownloaded:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Downloads > rs[j].Downloads
		})
	case SortAlphabetical:
		c := collate.New(language.English)
		sort.SliceStable(rs, func(i, j int) bool {
			return c.CompareString(rs[i].Title, rs[j].Title) < 0
		})
	}
}

// CollectTags returns every distinct tag across resources, lowercased and
// sorted alphabetically for stable display in filter controls.
func CollectTags(resources []models.Resource) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range resources {
		for _, t := range r.Tags {
			t = strings.ToLower(t)
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
