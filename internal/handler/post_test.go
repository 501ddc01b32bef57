package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pangeneses/NeonServer/internal/domain"
	"github.com/Pangeneses/NeonServer/internal/pagination"
)

type MockPostService struct {
	MockAppend func(threadID domain.ThreadId, post domain.Post) (domain.Post, error)
	MockChunk  func(threadID domain.ThreadId, lastID *primitive.ObjectID, direction pagination.Direction, limit int64) ([]domain.PostListing, error)
	MockBatch  func(ids []domain.PostId) ([]domain.PostListing, error)
}

func (m *MockPostService) Append(ctx context.Context, threadID domain.ThreadId, post domain.Post) (domain.Post, error) {
	if m.MockAppend != nil {
		return m.MockAppend(threadID, post)
	}
	post.Id = primitive.NewObjectID()
	return post, nil
}

func (m *MockPostService) Chunk(ctx context.Context, threadID domain.ThreadId, lastID *primitive.ObjectID, direction pagination.Direction, limit int64) ([]domain.PostListing, error) {
	if m.MockChunk != nil {
		return m.MockChunk(threadID, lastID, direction, limit)
	}
	return nil, nil
}

func (m *MockPostService) Batch(ctx context.Context, ids []domain.PostId) ([]domain.PostListing, error) {
	if m.MockBatch != nil {
		return m.MockBatch(ids)
	}
	return nil, nil
}

func newPostRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", h.CreatePost).Methods("POST")
	posts.HandleFunc("/chunk", h.ChunkPosts).Methods("GET")
	posts.HandleFunc("/batch", h.BatchPosts).Methods("GET")
	return router
}

func TestCreatePostHandler(t *testing.T) {
	h := &Handler{}
	router := newPostRouter(h)

	userID := primitive.NewObjectID()
	threadID := primitive.NewObjectID()

	t.Run("successful append", func(t *testing.T) {
		h.post = &MockPostService{
			MockAppend: func(gotThread domain.ThreadId, post domain.Post) (domain.Post, error) {
				assert.Equal(t, threadID, gotThread)
				post.Id = primitive.NewObjectID()
				tid := gotThread
				post.PostToThread = &tid
				return post, nil
			},
		}
		body := fmt.Sprintf(`{"PostUserID": %q, "PostToThread": %q, "PostBody": "a reply"}`,
			userID.Hex(), threadID.Hex())
		req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		// the append endpoint wraps the post under the Thread key
		var resp struct {
			Message string      `json:"message"`
			Thread  postPayload `json:"Thread"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Post created", resp.Message)
		assert.Equal(t, threadID.Hex(), resp.Thread.PostToThread)
	})

	t.Run("malformed thread id", func(t *testing.T) {
		body := fmt.Sprintf(`{"PostUserID": %q, "PostToThread": "nope", "PostBody": "x"}`, userID.Hex())
		req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid Thread ID")
	})
}

func TestChunkPostsHandler(t *testing.T) {
	h := &Handler{}
	router := newPostRouter(h)

	threadID := primitive.NewObjectID()

	t.Run("cursor and direction forwarded", func(t *testing.T) {
		cursor := primitive.NewObjectID()
		var gotLastID *primitive.ObjectID
		var gotDirection pagination.Direction
		var gotLimit int64
		h.post = &MockPostService{
			MockChunk: func(id domain.ThreadId, lastID *primitive.ObjectID, direction pagination.Direction, limit int64) ([]domain.PostListing, error) {
				assert.Equal(t, threadID, id)
				gotLastID, gotDirection, gotLimit = lastID, direction, limit
				return []domain.PostListing{}, nil
			},
		}
		url := fmt.Sprintf("/posts/chunk?ThreadID=%s&lastID=%s&direction=up&limit=7", threadID.Hex(), cursor.Hex())
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotLastID)
		assert.Equal(t, cursor, *gotLastID)
		assert.Equal(t, pagination.Up, gotDirection)
		assert.Equal(t, int64(7), gotLimit)
	})

	t.Run("thread id required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/chunk", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid Thread ID")
	})
}

func TestBatchPostsHandler(t *testing.T) {
	h := &Handler{}
	router := newPostRouter(h)

	t.Run("ids forwarded in order", func(t *testing.T) {
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		var got []domain.PostId
		h.post = &MockPostService{
			MockBatch: func(ids []domain.PostId) ([]domain.PostListing, error) {
				got = ids
				return []domain.PostListing{
					{Post: domain.Post{Id: a}},
					{Post: domain.Post{Id: b}},
				}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/posts/batch?PostIDs="+a.Hex()+","+b.Hex(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []domain.PostId{a, b}, got)
	})

	t.Run("malformed id in the list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/batch?PostIDs=zzz", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
