package repository

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookquest/bookquest/internal/model"
)

// Pagination defaults and bounds for list queries.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortDir is a sort direction for a single key. The zero value sorts
// descending, so only an explicit "asc" flips a key to ascending.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir maps a raw query parameter to a direction: "asc" sorts
// ascending, anything else (including absent) descending.
func ParseSortDir(raw string) SortDir {
	if raw == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

func (d SortDir) order() int {
	if d == SortAsc {
		return 1
	}
	return -1
}

// TimeWindow restricts results to one side of the freshness cutoff.
type TimeWindow int

const (
	WindowAll TimeWindow = iota
	WindowNew
	WindowOld
)

// ResolveWindow maps the New/old request flags to a window.
// New takes priority when both are supplied.
func ResolveWindow(newOnly, oldOnly bool) TimeWindow {
	switch {
	case newOnly:
		return WindowNew
	case oldOnly:
		return WindowOld
	default:
		return WindowAll
	}
}

// OwnerFilter resolves a requested owner filter against the caller's
// identity. Callers may only narrow results to their own records; a
// foreign user id is silently ignored.
func OwnerFilter(requested, callerID string) string {
	if requested != "" && requested == callerID {
		return requested
	}
	return ""
}

// BookQuery is an immutable filter/sort/pagination specification for
// listing books. All fields are optional; the zero value matches
// everything, sorted by creation time descending, first page.
type BookQuery struct {
	Language string
	Search   string
	OwnerID  string
	Window   TimeWindow

	CreatedSort SortDir
	RatingSort  SortDir

	Page  int
	Limit int
}

// Filter builds the document filter. All present predicates combine with
// logical AND; the search term expands to an OR over title and author.
// The caller supplies now so window predicates stay deterministic.
func (q BookQuery) Filter(now time.Time) bson.M {
	filter := bson.M{}

	if q.Language != "" {
		filter["language"] = q.Language
	}

	if q.OwnerID != "" {
		filter["ownerId"] = q.OwnerID
	}

	if q.Search != "" {
		// Case-insensitive substring match; the term is escaped so user
		// input never becomes a regex operator.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"author": pattern},
		}
	}

	cutoff := now.Add(-model.FreshnessWindow)
	switch q.Window {
	case WindowNew:
		filter["createdAt"] = bson.M{"$gte": cutoff}
	case WindowOld:
		filter["createdAt"] = bson.M{"$lt": cutoff}
	}

	return filter
}

// Sort builds the sort specification: creation time is the primary key,
// rating the secondary. Both directions default to descending.
func (q BookQuery) Sort() bson.D {
	return bson.D{
		{Key: "createdAt", Value: q.CreatedSort.order()},
		{Key: "rating", Value: q.RatingSort.order()},
	}
}

// PageSize returns the effective page size, applying default and cap.
func (q BookQuery) PageSize() int64 {
	if q.Limit < 1 {
		return DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		return MaxPageSize
	}
	return int64(q.Limit)
}

// Skip returns the pagination offset: (page-1) * limit.
func (q BookQuery) Skip() int64 {
	page := int64(q.Page)
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.PageSize()
}

// FindOptions assembles the sort and pagination options for a Find call.
func (q BookQuery) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(q.Sort()).
		SetSkip(q.Skip()).
		SetLimit(q.PageSize())
}
