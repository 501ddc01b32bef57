package handler

import (
	"net/http"
	"strings"
	"time"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"

	"github.com/Pangeneses/NeonServer/internal/domain"
	"github.com/Pangeneses/NeonServer/internal/pagination"
	"github.com/Pangeneses/NeonServer/internal/utils"
)

type postPayload struct {
	PostID         string              `json:"PostID"`
	PostUserID     string              `json:"PostUserID"`
	PostBody       string              `json:"PostBody"`
	PostDate       time.Time           `json:"PostDate"`
	PostToThread   string              `json:"PostToThread,omitempty"`
	PostToPost     string              `json:"PostToPost,omitempty"`
	PostVisibility bool                `json:"PostVisibility"`
	Author         *domain.UserSummary `json:"Author,omitempty"`
}

func toPostPayload(post domain.Post, author *domain.UserSummary) postPayload {
	payload := postPayload{
		PostID:         post.Id.Hex(),
		PostUserID:     post.PostUserID.Hex(),
		PostBody:       post.PostBody,
		PostDate:       post.PostDate,
		PostVisibility: post.PostVisibility,
		Author:         author,
	}
	if post.PostToThread != nil {
		payload.PostToThread = post.PostToThread.Hex()
	}
	if post.PostToPost != nil {
		payload.PostToPost = post.PostToPost.Hex()
	}
	return payload
}

type createPostRequest struct {
	PostUserID   string `validate:"required" json:"PostUserID"`
	PostBody     string `json:"PostBody"`
	PostToThread string `validate:"required" json:"PostToThread"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body createPostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := parseHex(body.PostUserID, "Post")
	if err != nil {
		utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
			Message:    "Valid PostUserID is required.",
			StatusCode: http.StatusBadRequest,
		})
		return
	}
	threadID, err := parseHex(body.PostToThread, "Thread")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	post := domain.Post{
		PostUserID:     userID,
		PostBody:       body.PostBody,
		PostVisibility: true,
	}

	created, err := h.post.Append(r.Context(), threadID, post)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// The envelope key is Thread, kept for compatibility with existing
	// clients of the append endpoint.
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created",
		"Thread":  toPostPayload(created, nil),
	})
}

func (h *Handler) ChunkPosts(w http.ResponseWriter, r *http.Request) {
	threadID, err := parseHex(r.URL.Query().Get("ThreadID"), "Thread")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	q := pagination.ParseChunk(r.URL.Query(), "Post", h.chunkLimits())

	listings, err := h.post.Chunk(r.Context(), threadID, q.LastID, q.Direction, q.Limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"Posts": toPostPayloads(listings)})
}

func (h *Handler) BatchPosts(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("PostIDs")

	ids := make([]domain.PostId, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseHex(part, "Post")
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		ids = append(ids, id)
	}

	listings, err := h.post.Batch(r.Context(), ids)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"Posts": toPostPayloads(listings)})
}

func toPostPayloads(listings []domain.PostListing) []postPayload {
	payloads := make([]postPayload, 0, len(listings))
	for _, listing := range listings {
		payloads = append(payloads, toPostPayload(listing.Post, listing.Author))
	}
	return payloads
}
