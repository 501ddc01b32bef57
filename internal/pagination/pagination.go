// Package pagination builds the cursor chunk queries shared by articles,
// threads, posts and the user scan. Criteria parsing is deliberately
// permissive: a malformed criterion is dropped, never an error, and a
// malformed cursor means "no cursor". Filters compose with logical AND;
// hashtags match with ANY-of semantics.
package pagination

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pangeneses/NeonServer/internal/sanitize"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Limits carries the operator-configured chunk size bounds. Zero fields fall
// back to DefaultLimit and MaxLimit.
type Limits struct {
	Default int64
	Max     int64
}

var alphaRe = regexp.MustCompile(`^[a-zA-Z]+$`)

// ChunkQuery is a parsed, normalized chunk request. Zero-valued criteria are
// absent and contribute nothing to the filter.
type ChunkQuery struct {
	Limit     int64
	LastID    *primitive.ObjectID
	Direction Direction

	Owners   []primitive.ObjectID
	Category string // normalized token, already vetted as alphabetic
	Hashtags []string
	From     *time.Time // set as a pair with To or not at all
	To       *time.Time
}

// ParseChunk reads limit/lastID/direction plus the prefixed criteria keys
// (e.g. ArticleUserID, ArticleCategory, ArticleHashtags, ArticleFrom,
// ArticleTo for prefix "Article") from a URL query.
func ParseChunk(values url.Values, prefix string, limits Limits) ChunkQuery {
	q := ChunkQuery{
		Limit:     clampLimit(values.Get("limit"), limits),
		Direction: normalizeDirection(values.Get("direction")),
	}

	// Malformed cursors are silently treated as absent. Inherited behavior:
	// a typo'd lastID restarts pagination instead of failing the request.
	if lastID := values.Get("lastID"); lastID != "" {
		if id, err := primitive.ObjectIDFromHex(lastID); err == nil {
			q.LastID = &id
		}
	}

	for _, raw := range values[prefix+"UserID"] {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			q.Owners = append(q.Owners, id)
		}
	}

	if category := values.Get(prefix + "Category"); strings.TrimSpace(category) != "" && category != "Unspecified" {
		normalized := sanitize.NormalizeCategory(category)
		if alphaRe.MatchString(normalized) {
			q.Category = normalized
		}
	}

	for _, tag := range values[prefix+"Hashtags"] {
		if strings.TrimSpace(tag) != "" {
			q.Hashtags = append(q.Hashtags, tag)
		}
	}

	// The date range is both-or-nothing: a lone bound, like a malformed one,
	// drops the whole range.
	from := parseDate(values.Get(prefix + "From"))
	to := parseDate(values.Get(prefix + "To"))
	if from != nil && to != nil {
		q.From, q.To = from, to
	}

	return q
}

func clampLimit(raw string, limits Limits) int64 {
	if limits.Default < 1 {
		limits.Default = DefaultLimit
	}
	if limits.Max < 1 {
		limits.Max = MaxLimit
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return limits.Default
	}
	if limit > limits.Max {
		return limits.Max
	}
	return limit
}

func normalizeDirection(raw string) Direction {
	if raw == string(Up) {
		return Up
	}
	return Down
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// Filter composes the criteria into a document filter, keyed with the
// entity's field prefix ("Article", "Thread").
func (q ChunkQuery) Filter(prefix string) bson.M {
	filter := bson.M{}

	switch len(q.Owners) {
	case 0:
	case 1:
		filter[prefix+"UserID"] = q.Owners[0]
	default:
		filter[prefix+"UserID"] = bson.M{"$in": q.Owners}
	}

	if q.Category != "" {
		filter[prefix+"Category"] = q.Category
	}

	if len(q.Hashtags) > 0 {
		filter[prefix+"Hashtags"] = bson.M{"$in": q.Hashtags}
	}

	if q.From != nil && q.To != nil {
		filter[prefix+"Date"] = bson.M{"$gte": *q.From, "$lte": *q.To}
	}

	if q.LastID != nil {
		if q.Direction == Up {
			filter["_id"] = bson.M{"$gt": *q.LastID}
		} else {
			filter["_id"] = bson.M{"$lt": *q.LastID}
		}
	}

	return filter
}

// Sort orders by identifier: ascending for up, descending for down. Returned
// chunks keep this order; the caller's next cursor is the last element's id.
func (q ChunkQuery) Sort() bson.D {
	order := -1
	if q.Direction == Up {
		order = 1
	}
	return bson.D{{Key: "_id", Value: order}}
}

// SliceWindow pages through an already-ordered id list (a thread's post
// sequence). The cursor is positional: the window starts just past lastID in
// the requested direction. An unknown or absent cursor starts from the
// appropriate end.
func SliceWindow(ids []primitive.ObjectID, lastID *primitive.ObjectID, direction Direction, limit int64) []primitive.ObjectID {
	index := -1
	if direction == Up {
		index = len(ids)
	}
	if lastID != nil {
		for i, id := range ids {
			if id == *lastID {
				index = i
				break
			}
		}
	}

	var start, end int
	if direction == Up {
		start = index - int(limit)
		if start < 0 {
			start = 0
		}
		end = index
	} else {
		start = index + 1
		end = start + int(limit)
		if end > len(ids) {
			end = len(ids)
		}
	}
	if start >= end {
		return nil
	}
	return ids[start:end]
}
