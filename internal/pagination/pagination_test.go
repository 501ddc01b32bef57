package pagination

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseChunkLimit(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
	}{
		{"absent uses default", "", DefaultLimit},
		{"valid passes through", "25", 25},
		{"above cap clamps", "3000", MaxLimit},
		{"zero uses default", "0", DefaultLimit},
		{"negative uses default", "-5", DefaultLimit},
		{"garbage uses default", "ten", DefaultLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			if tc.raw != "" {
				values.Set("limit", tc.raw)
			}
			q := ParseChunk(values, "Article", Limits{})
			assert.Equal(t, tc.want, q.Limit)
		})
	}
}

func TestParseChunkConfiguredLimits(t *testing.T) {
	limits := Limits{Default: 20, Max: 50}

	t.Run("absent uses configured default", func(t *testing.T) {
		q := ParseChunk(url.Values{}, "Article", limits)
		assert.Equal(t, int64(20), q.Limit)
	})

	t.Run("configured cap clamps", func(t *testing.T) {
		q := ParseChunk(url.Values{"limit": {"100"}}, "Article", limits)
		assert.Equal(t, int64(50), q.Limit)
	})

	t.Run("within cap passes through", func(t *testing.T) {
		q := ParseChunk(url.Values{"limit": {"30"}}, "Article", limits)
		assert.Equal(t, int64(30), q.Limit)
	})

	t.Run("zero limits fall back to package defaults", func(t *testing.T) {
		q := ParseChunk(url.Values{"limit": {"3000"}}, "Article", Limits{})
		assert.Equal(t, int64(MaxLimit), q.Limit)
	})
}

func TestParseChunkDirection(t *testing.T) {
	q := ParseChunk(url.Values{}, "Article", Limits{})
	assert.Equal(t, Down, q.Direction)

	q = ParseChunk(url.Values{"direction": {"up"}}, "Article", Limits{})
	assert.Equal(t, Up, q.Direction)

	// anything unrecognized falls back to down
	q = ParseChunk(url.Values{"direction": {"sideways"}}, "Article", Limits{})
	assert.Equal(t, Down, q.Direction)
}

func TestParseChunkCursor(t *testing.T) {
	t.Run("valid cursor kept", func(t *testing.T) {
		id := primitive.NewObjectID()
		q := ParseChunk(url.Values{"lastID": {id.Hex()}}, "Article", Limits{})
		require.NotNil(t, q.LastID)
		assert.Equal(t, id, *q.LastID)
	})

	t.Run("malformed cursor dropped", func(t *testing.T) {
		q := ParseChunk(url.Values{"lastID": {"not-hex"}}, "Article", Limits{})
		assert.Nil(t, q.LastID)
	})
}

func TestParseChunkCriteria(t *testing.T) {
	t.Run("repeated owner ids collected", func(t *testing.T) {
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		values := url.Values{"ArticleUserID": {a.Hex(), "junk", b.Hex()}}
		q := ParseChunk(values, "Article", Limits{})
		assert.Equal(t, []primitive.ObjectID{a, b}, q.Owners)
	})

	t.Run("category normalized", func(t *testing.T) {
		q := ParseChunk(url.Values{"ArticleCategory": {"Sci Fi"}}, "Article", Limits{})
		assert.Equal(t, "SciFi", q.Category)
	})

	t.Run("Unspecified category dropped", func(t *testing.T) {
		q := ParseChunk(url.Values{"ArticleCategory": {"Unspecified"}}, "Article", Limits{})
		assert.Empty(t, q.Category)
	})

	t.Run("non alphabetic category dropped", func(t *testing.T) {
		q := ParseChunk(url.Values{"ArticleCategory": {"Top-10"}}, "Article", Limits{})
		assert.Empty(t, q.Category)
	})

	t.Run("blank hashtags dropped", func(t *testing.T) {
		values := url.Values{"ArticleHashtags": {"#go", "  ", "#db"}}
		q := ParseChunk(values, "Article", Limits{})
		assert.Equal(t, []string{"#go", "#db"}, q.Hashtags)
	})

	t.Run("date layouts", func(t *testing.T) {
		for _, raw := range []string{
			"2026-01-02T15:04:05Z",
			"2026-01-02T15:04:05",
			"2026-01-02 15:04:05",
			"2026-01-02",
		} {
			values := url.Values{"ArticleFrom": {raw}, "ArticleTo": {"2026-03-01"}}
			q := ParseChunk(values, "Article", Limits{})
			assert.NotNil(t, q.From, raw)
			assert.NotNil(t, q.To, raw)
		}
	})

	t.Run("lone date bound dropped", func(t *testing.T) {
		q := ParseChunk(url.Values{"ArticleFrom": {"2026-01-02"}}, "Article", Limits{})
		assert.Nil(t, q.From)

		q = ParseChunk(url.Values{"ArticleTo": {"2026-01-02"}}, "Article", Limits{})
		assert.Nil(t, q.To)
	})

	t.Run("unparseable bound drops the range", func(t *testing.T) {
		values := url.Values{"ArticleFrom": {"next tuesday"}, "ArticleTo": {"2026-03-01"}}
		q := ParseChunk(values, "Article", Limits{})
		assert.Nil(t, q.From)
		assert.Nil(t, q.To)
	})
}

func TestFilter(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, ChunkQuery{}.Filter("Thread"))
	})

	t.Run("single owner is a direct match", func(t *testing.T) {
		id := primitive.NewObjectID()
		f := ChunkQuery{Owners: []primitive.ObjectID{id}}.Filter("Thread")
		assert.Equal(t, id, f["ThreadUserID"])
	})

	t.Run("multiple owners use in", func(t *testing.T) {
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		f := ChunkQuery{Owners: []primitive.ObjectID{a, b}}.Filter("Thread")
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{a, b}}, f["ThreadUserID"])
	})

	t.Run("hashtags match any", func(t *testing.T) {
		f := ChunkQuery{Hashtags: []string{"#a", "#b"}}.Filter("Thread")
		assert.Equal(t, bson.M{"$in": []string{"#a", "#b"}}, f["ThreadHashtags"])
	})

	t.Run("date range is inclusive both ends", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		f := ChunkQuery{From: &from, To: &to}.Filter("Thread")
		assert.Equal(t, bson.M{"$gte": from, "$lte": to}, f["ThreadDate"])
	})

	t.Run("lone bound contributes nothing", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		f := ChunkQuery{From: &from}.Filter("Thread")
		assert.NotContains(t, f, "ThreadDate")
	})

	t.Run("cursor direction picks comparison", func(t *testing.T) {
		id := primitive.NewObjectID()

		f := ChunkQuery{LastID: &id, Direction: Down}.Filter("Thread")
		assert.Equal(t, bson.M{"$lt": id}, f["_id"])

		f = ChunkQuery{LastID: &id, Direction: Up}.Filter("Thread")
		assert.Equal(t, bson.M{"$gt": id}, f["_id"])
	})

	t.Run("criteria compose with AND", func(t *testing.T) {
		id := primitive.NewObjectID()
		from := time.Now().Add(-time.Hour)
		to := time.Now()
		f := ChunkQuery{
			Owners:   []primitive.ObjectID{id},
			Category: "SciFi",
			Hashtags: []string{"#a"},
			From:     &from,
			To:       &to,
		}.Filter("Article")
		assert.Len(t, f, 4)
		assert.Equal(t, "SciFi", f["ArticleCategory"])
	})
}

func TestSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: -1}}, ChunkQuery{Direction: Down}.Sort())
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, ChunkQuery{Direction: Up}.Sort())
}

func TestSliceWindow(t *testing.T) {
	ids := make([]primitive.ObjectID, 10)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}

	t.Run("no cursor down starts at head", func(t *testing.T) {
		got := SliceWindow(ids, nil, Down, 3)
		assert.Equal(t, ids[0:3], got)
	})

	t.Run("no cursor up takes the tail", func(t *testing.T) {
		got := SliceWindow(ids, nil, Up, 3)
		assert.Equal(t, ids[7:10], got)
	})

	t.Run("cursor down continues past it", func(t *testing.T) {
		got := SliceWindow(ids, &ids[3], Down, 3)
		assert.Equal(t, ids[4:7], got)
	})

	t.Run("cursor up takes the preceding window", func(t *testing.T) {
		got := SliceWindow(ids, &ids[6], Up, 3)
		assert.Equal(t, ids[3:6], got)
	})

	t.Run("window clipped at the ends", func(t *testing.T) {
		assert.Equal(t, ids[9:10], SliceWindow(ids, &ids[8], Down, 5))
		assert.Equal(t, ids[0:1], SliceWindow(ids, &ids[1], Up, 5))
	})

	t.Run("exhausted cursor yields nothing", func(t *testing.T) {
		assert.Nil(t, SliceWindow(ids, &ids[9], Down, 3))
		assert.Nil(t, SliceWindow(ids, &ids[0], Up, 3))
	})

	t.Run("unknown cursor restarts from the end", func(t *testing.T) {
		stranger := primitive.NewObjectID()
		assert.Equal(t, ids[0:3], SliceWindow(ids, &stranger, Down, 3))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Nil(t, SliceWindow(nil, nil, Down, 3))
	})
}
