package repository

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookQuery_Filter_Empty(t *testing.T) {
	t.Parallel()

	filter := BookQuery{}.Filter(time.Now())
	if len(filter) != 0 {
		t.Errorf("zero query should produce empty filter, got %v", filter)
	}
}

func TestBookQuery_Filter_Language(t *testing.T) {
	t.Parallel()

	filter := BookQuery{Language: "en"}.Filter(time.Now())
	if filter["language"] != "en" {
		t.Errorf("language filter = %v, want en", filter["language"])
	}
	if len(filter) != 1 {
		t.Errorf("expected single predicate, got %v", filter)
	}
}

func TestBookQuery_Filter_Search(t *testing.T) {
	t.Parallel()

	filter := BookQuery{Search: "tolkien"}.Filter(time.Now())

	or, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("search should build an $or combinator, got %v", filter)
	}
	if len(or) != 2 {
		t.Fatalf("$or should cover title and author, got %d branches", len(or))
	}

	title := or[0].(bson.M)["title"].(primitive.Regex)
	author := or[1].(bson.M)["author"].(primitive.Regex)

	if title.Pattern != "tolkien" || author.Pattern != "tolkien" {
		t.Errorf("patterns = %q/%q, want tolkien", title.Pattern, author.Pattern)
	}
	if title.Options != "i" || author.Options != "i" {
		t.Errorf("search matches must be case-insensitive, got %q/%q", title.Options, author.Options)
	}
}

func TestBookQuery_Filter_SearchEscapesRegexMeta(t *testing.T) {
	t.Parallel()

	filter := BookQuery{Search: "c++ (2nd ed.)"}.Filter(time.Now())

	or := filter["$or"].(bson.A)
	title := or[0].(bson.M)["title"].(primitive.Regex)

	if title.Pattern == "c++ (2nd ed.)" {
		t.Error("regex metacharacters in the search term must be escaped")
	}
	if title.Pattern != `c\+\+ \(2nd ed\.\)` {
		t.Errorf("unexpected escaped pattern %q", title.Pattern)
	}
}

func TestBookQuery_Filter_Windows(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-10 * time.Minute)

	newFilter := BookQuery{Window: WindowNew}.Filter(now)
	created, ok := newFilter["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("new window should constrain createdAt, got %v", newFilter)
	}
	if !created["$gte"].(time.Time).Equal(cutoff) {
		t.Errorf("new window cutoff = %v, want %v", created["$gte"], cutoff)
	}

	oldFilter := BookQuery{Window: WindowOld}.Filter(now)
	created = oldFilter["createdAt"].(bson.M)
	if !created["$lt"].(time.Time).Equal(cutoff) {
		t.Errorf("old window cutoff = %v, want %v", created["$lt"], cutoff)
	}

	allFilter := BookQuery{Window: WindowAll}.Filter(now)
	if _, present := allFilter["createdAt"]; present {
		t.Error("no window flag should leave createdAt unconstrained")
	}
}

func TestResolveWindow_NewTakesPriority(t *testing.T) {
	t.Parallel()

	if got := ResolveWindow(true, true); got != WindowNew {
		t.Errorf("ResolveWindow(true, true) = %v, want WindowNew", got)
	}
	if got := ResolveWindow(false, true); got != WindowOld {
		t.Errorf("ResolveWindow(false, true) = %v, want WindowOld", got)
	}
	if got := ResolveWindow(false, false); got != WindowAll {
		t.Errorf("ResolveWindow(false, false) = %v, want WindowAll", got)
	}
}

func TestOwnerFilter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		requested string
		caller    string
		want      string
	}{
		{name: "own id honored", requested: "user-a", caller: "user-a", want: "user-a"},
		{name: "foreign id ignored", requested: "user-a", caller: "user-b", want: ""},
		{name: "absent filter", requested: "", caller: "user-b", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OwnerFilter(tc.requested, tc.caller); got != tc.want {
				t.Errorf("OwnerFilter(%q, %q) = %q, want %q", tc.requested, tc.caller, got, tc.want)
			}
		})
	}
}

func TestBookQuery_Filter_CombinesPredicates(t *testing.T) {
	t.Parallel()

	now := time.Now()
	q := BookQuery{
		Language: "en",
		Search:   "tolkien",
		OwnerID:  "user-a",
		Window:   WindowNew,
	}

	filter := q.Filter(now)
	for _, key := range []string{"language", "$or", "ownerId", "createdAt"} {
		if _, present := filter[key]; !present {
			t.Errorf("combined filter missing %q: %v", key, filter)
		}
	}
	if len(filter) != 4 {
		t.Errorf("expected 4 predicates ANDed together, got %d", len(filter))
	}
}

func TestBookQuery_Sort(t *testing.T) {
	t.Parallel()

	// Defaults: createdAt descending primary, rating descending secondary.
	sort := BookQuery{}.Sort()
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Errorf("primary sort = %v, want createdAt descending", sort[0])
	}
	if sort[1].Key != "rating" || sort[1].Value != -1 {
		t.Errorf("secondary sort = %v, want rating descending", sort[1])
	}

	sort = BookQuery{CreatedSort: SortAsc, RatingSort: SortAsc}.Sort()
	if sort[0].Value != 1 || sort[1].Value != 1 {
		t.Errorf("asc directions not applied: %v", sort)
	}
}

func TestParseSortDir(t *testing.T) {
	t.Parallel()

	if ParseSortDir("asc") != SortAsc {
		t.Error(`"asc" should parse ascending`)
	}
	for _, raw := range []string{"", "desc", "DESC", "Asc", "garbage"} {
		if ParseSortDir(raw) != SortDesc {
			t.Errorf("ParseSortDir(%q) should default to descending", raw)
		}
	}
}

func TestBookQuery_Pagination(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		page     int
		limit    int
		wantSkip int64
		wantSize int64
	}{
		{name: "defaults", page: 0, limit: 0, wantSkip: 0, wantSize: DefaultPageSize},
		{name: "first page", page: 1, limit: 5, wantSkip: 0, wantSize: 5},
		{name: "second page of five", page: 2, limit: 5, wantSkip: 5, wantSize: 5},
		{name: "third page of ten", page: 3, limit: 10, wantSkip: 20, wantSize: 10},
		{name: "limit capped", page: 1, limit: 1000, wantSkip: 0, wantSize: MaxPageSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := BookQuery{Page: tc.page, Limit: tc.limit}
			if got := q.Skip(); got != tc.wantSkip {
				t.Errorf("Skip() = %d, want %d", got, tc.wantSkip)
			}
			if got := q.PageSize(); got != tc.wantSize {
				t.Errorf("PageSize() = %d, want %d", got, tc.wantSize)
			}
		})
	}
}
