package search_test

import (
	"testing"
	"time"

	"github.com/edunaija/edunaija/internal/app/system/search"
	"github.com/edunaija/edunaija/internal/domain/models"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func res(title, category string, tags []string, createdOffset time.Duration, views, downloads int64) models.Resource {
	return models.Resource{
		Title:     title,
		Category:  category,
		Tags:      tags,
		CreatedAt: base.Add(createdOffset),
		Views:     views,
		Downloads: downloads,
	}
}

func titles(rs []models.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func assertTitles(t *testing.T, got []models.Resource, want ...string) {
	t.Helper()
	gt := titles(got)
	if len(gt) != len(want) {
		t.Fatalf("got %v, want %v", gt, want)
	}
	for i := range want {
		if gt[i] != want[i] {
			t.Fatalf("got %v, want %v", gt, want)
		}
	}
}

func TestSelect_EmptyParamsReturnsAllNewestFirst(t *testing.T) {
	rs := []models.Resource{
		res("old", "science", nil, 0, 0, 0),
		res("new", "english", nil, time.Hour, 0, 0),
		res("mid", "science", nil, time.Minute, 0, 0),
	}

	got := search.Select(rs, search.Params{})
	assertTitles(t, got, "new", "mid", "old")

	// Input order must be untouched.
	if rs[0].Title != "old" || rs[2].Title != "mid" {
		t.Errorf("input slice was mutated: %v", titles(rs))
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	got := search.Select(nil, search.Params{Term: "math", Sort: search.SortAlphabetical})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", titles(got))
	}
}

func TestSelect_TextFilterCaseInsensitive(t *testing.T) {
	rs := []models.Resource{
		res("Mathematics for JSS1", "mathematics", []string{"math", "jss1"}, 0, 0, 0),
		res("English Basics", "english", []string{"english"}, time.Hour, 0, 0),
	}

	for _, term := range []string{"math", "MATH", "jss1"} {
		got := search.Select(rs, search.Params{Term: term})
		assertTitles(t, got, "Mathematics for JSS1")
	}
}

func TestSelect_TextFilterMatchesDescriptionAndTags(t *testing.T) {
	rs := []models.Resource{
		{Title: "A", Description: "covers algebra drills", CreatedAt: base},
		{Title: "B", Tags: []string{"geometry"}, CreatedAt: base},
		{Title: "C", CreatedAt: base},
	}

	assertTitles(t, search.Select(rs, search.Params{Term: "Algebra"}), "A")
	assertTitles(t, search.Select(rs, search.Params{Term: "GEO"}), "B")
}

func TestSelect_EmptyTermIsNoOp(t *testing.T) {
	rs := []models.Resource{
		res("one", "science", nil, 0, 0, 0),
		res("two", "english", nil, time.Minute, 0, 0),
	}

	if got := search.Select(rs, search.Params{Term: "   "}); len(got) != 2 {
		t.Fatalf("blank term should be inactive, got %v", titles(got))
	}
}

func TestSelect_CategoryExactCaseSensitive(t *testing.T) {
	rs := []models.Resource{
		res("lower", "science", nil, 0, 0, 0),
		res("upper", "Science", nil, time.Minute, 0, 0),
	}

	assertTitles(t, search.Select(rs, search.Params{Category: "science"}), "lower")
	assertTitles(t, search.Select(rs, search.Params{Category: "Science"}), "upper")

	// "all" and "" both mean no category filter.
	if got := search.Select(rs, search.Params{Category: search.CategoryAll}); len(got) != 2 {
		t.Errorf(`category "all" should be inactive, got %v`, titles(got))
	}
	if got := search.Select(rs, search.Params{Category: ""}); len(got) != 2 {
		t.Errorf("empty category should be inactive, got %v", titles(got))
	}
}

func TestSelect_TagFilterConjunctiveSubstring(t *testing.T) {
	rs := []models.Resource{
		res("both", "mathematics", []string{"mathematics", "waec-2023"}, 0, 0, 0),
		res("math only", "mathematics", []string{"mathematics"}, time.Minute, 0, 0),
		res("year only", "english", []string{"2023"}, 2*time.Minute, 0, 0),
	}

	got := search.Select(rs, search.Params{Tags: []string{"math", "2023"}})
	assertTitles(t, got, "both")

	// A selected tag matches by substring, not exact equality, and the
	// default newest sort still applies to the filtered set.
	got = search.Select(rs, search.Params{Tags: []string{"MATH"}})
	assertTitles(t, got, "math only", "both")
}

func TestSelect_TagFilterSingle(t *testing.T) {
	rs := []models.Resource{
		res("a", "mathematics", []string{"mathematics"}, 0, 0, 0),
		res("b", "english", []string{"english"}, time.Minute, 0, 0),
	}

	got := search.Select(rs, search.Params{Tags: []string{"Math"}})
	assertTitles(t, got, "a")
}

func TestSelect_SortStableOnEqualCreatedAt(t *testing.T) {
	rs := []models.Resource{
		res("first", "science", nil, 0, 0, 0),
		res("second", "science", nil, 0, 0, 0),
		res("third", "science", nil, 0, 0, 0),
	}

	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortNewest}), "first", "second", "third")
	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortOldest}), "first", "second", "third")
}

func TestSelect_SortOldest(t *testing.T) {
	rs := []models.Resource{
		res("b", "science", nil, time.Hour, 0, 0),
		res("a", "science", nil, 0, 0, 0),
	}
	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortOldest}), "a", "b")
}

func TestSelect_SortCounters(t *testing.T) {
	rs := []models.Resource{
		res("unviewed", "science", nil, 0, 0, 0),
		res("popular", "science", nil, time.Minute, 10, 3),
		res("middling", "science", nil, 2*time.Minute, 5, 7),
	}

	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortMostViewed}),
		"popular", "middling", "unviewed")
	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortMostDownloaded}),
		"middling", "popular", "unviewed")
}

func TestSelect_ZeroCountersSortLast(t *testing.T) {
	// A resource with no recorded views behaves as zero and lands after
	// anything with a positive count.
	rs := []models.Resource{
		res("nothing", "science", nil, 0, 0, 0),
		res("one view", "science", nil, time.Minute, 1, 0),
	}

	got := search.Select(rs, search.Params{Sort: search.SortMostViewed})
	assertTitles(t, got, "one view", "nothing")
}

func TestSelect_SortAlphabetical(t *testing.T) {
	rs := []models.Resource{
		res("banana", "science", nil, 0, 0, 0),
		res("Apple", "science", nil, time.Minute, 0, 0),
		res("cherry", "science", nil, 2*time.Minute, 0, 0),
	}

	got := search.Select(rs, search.Params{Sort: search.SortAlphabetical})
	assertTitles(t, got, "Apple", "banana", "cherry")
}

func TestSelect_UnknownSortKeepsInputOrder(t *testing.T) {
	rs := []models.Resource{
		res("z", "science", nil, 0, 0, 0),
		res("a", "science", nil, time.Hour, 0, 0),
	}

	got := search.Select(rs, search.Params{Sort: "bogus"})
	assertTitles(t, got, "z", "a")
}

func TestSelect_EndToEnd(t *testing.T) {
	a := res("Mathematics for JSS1", "Mathematics", []string{"math", "jss1"}, 0, 10, 0)
	b := res("English Basics", "English", []string{"english"}, time.Hour, 5, 0)
	rs := []models.Resource{a, b}

	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortNewest}),
		"English Basics", "Mathematics for JSS1")
	assertTitles(t, search.Select(rs, search.Params{Category: "Mathematics"}),
		"Mathematics for JSS1")
	assertTitles(t, search.Select(rs, search.Params{Term: "basics"}),
		"English Basics")
	assertTitles(t, search.Select(rs, search.Params{Sort: search.SortMostViewed}),
		"Mathematics for JSS1", "English Basics")
}

func TestCollectTags(t *testing.T) {
	rs := []models.Resource{
		{Tags: []string{"Math", "jss1"}},
		{Tags: []string{"math", "waec"}},
		{Tags: nil},
	}

	got := search.CollectTags(rs)
	want := []string{"jss1", "math", "waec"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCollectTags_RoundTripWithTagFilter(t *testing.T) {
	rs := []models.Resource{
		res("m", "mathematics", []string{"math", "jss1"}, 0, 0, 0),
		res("e", "english", []string{"english"}, time.Minute, 0, 0),
	}

	// Every tag reported by CollectTags must select at least the resource
	// that contributed it.
	for _, tag := range search.CollectTags(rs) {
		got := search.Select(rs, search.Params{Tags: []string{tag}})
		if len(got) == 0 {
			t.Errorf("tag %q from CollectTags selected nothing", tag)
		}
	}
}
