package handler

import (
	"net/http"
	"time"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"

	"github.com/Pangeneses/NeonServer/internal/domain"
	"github.com/Pangeneses/NeonServer/internal/pagination"
	"github.com/Pangeneses/NeonServer/internal/sanitize"
	"github.com/Pangeneses/NeonServer/internal/service"
	"github.com/Pangeneses/NeonServer/internal/utils"
)

type threadPayload struct {
	ThreadID         string              `json:"ThreadID"`
	ThreadUserID     string              `json:"ThreadUserID"`
	ThreadTitle      string              `json:"ThreadTitle"`
	ThreadImage      string              `json:"ThreadImage"`
	ThreadDate       time.Time           `json:"ThreadDate"`
	ThreadAccess     int                 `json:"ThreadAccess"`
	ThreadCategory   string              `json:"ThreadCategory"`
	ThreadHashtags   []string            `json:"ThreadHashtags"`
	ThreadPosts      []string            `json:"ThreadPosts"`
	ThreadVisibility bool                `json:"ThreadVisibility"`
	SeedPostID       string              `json:"SeedPostID,omitempty"`
	SeedBody         string              `json:"SeedBody,omitempty"`
	Author           *domain.UserSummary `json:"Author,omitempty"`
}

func toThreadPayload(thread domain.Thread) threadPayload {
	posts := make([]string, 0, len(thread.ThreadPosts))
	for _, id := range thread.ThreadPosts {
		posts = append(posts, id.Hex())
	}
	return threadPayload{
		ThreadID:         thread.Id.Hex(),
		ThreadUserID:     thread.ThreadUserID.Hex(),
		ThreadTitle:      thread.ThreadTitle,
		ThreadImage:      thread.ThreadImage,
		ThreadDate:       thread.ThreadDate,
		ThreadAccess:     thread.ThreadAccess,
		ThreadCategory:   sanitize.CategoryLabel(thread.ThreadCategory),
		ThreadHashtags:   thread.ThreadHashtags,
		ThreadPosts:      posts,
		ThreadVisibility: thread.ThreadVisibility,
	}
}

func toThreadListingPayload(listing domain.ThreadListing) threadPayload {
	payload := toThreadPayload(listing.Thread)
	payload.SeedPostID = listing.SeedPostID.Hex()
	payload.SeedBody = listing.SeedBody
	payload.Author = listing.Author
	return payload
}

type createThreadRequest struct {
	ThreadUserID     string    `validate:"required" json:"ThreadUserID"`
	ThreadTitle      string    `validate:"required" json:"ThreadTitle"`
	ThreadPost       string    `validate:"required" json:"ThreadPost"`
	ThreadImage      string    `json:"ThreadImage"`
	ThreadDate       time.Time `json:"ThreadDate"`
	ThreadAccess     int       `json:"ThreadAccess"`
	ThreadCategory   string    `json:"ThreadCategory"`
	ThreadHashtags   []string  `json:"ThreadHashtags"`
	ThreadVisibility *bool     `json:"ThreadVisibility"`
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body createThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := parseHex(body.ThreadUserID, "Thread")
	if err != nil {
		utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
			Message:    "Valid ThreadUserID is required.",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	// Omitted visibility means visible; an omitted date is filled in by the
	// service.
	visibility := true
	if body.ThreadVisibility != nil {
		visibility = *body.ThreadVisibility
	}

	creation := domain.ThreadCreationData{
		Thread: domain.Thread{
			ThreadUserID:     userID,
			ThreadTitle:      body.ThreadTitle,
			ThreadImage:      body.ThreadImage,
			ThreadDate:       body.ThreadDate,
			ThreadAccess:     body.ThreadAccess,
			ThreadCategory:   body.ThreadCategory,
			ThreadHashtags:   body.ThreadHashtags,
			ThreadVisibility: visibility,
		},
		SeedBody: body.ThreadPost,
	}

	created, err := h.thread.Create(r.Context(), creation)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Thread created",
		"Thread":  toThreadPayload(created),
	})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Thread")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	listing, err := h.thread.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"Thread": toThreadListingPayload(listing),
	})
}

func (h *Handler) ChunkThreads(w http.ResponseWriter, r *http.Request) {
	q := pagination.ParseChunk(r.URL.Query(), "Thread", h.chunkLimits())

	listings, err := h.thread.Chunk(r.Context(), q)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	payloads := make([]threadPayload, 0, len(listings))
	for _, listing := range listings {
		payloads = append(payloads, toThreadListingPayload(listing))
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"Threads": payloads})
}

func (h *Handler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Thread")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	changes, err := h.threadChanges(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	listing, err := h.thread.Update(r.Context(), id, changes)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Thread updated",
		"Thread":  toThreadListingPayload(listing),
	})
}

func (h *Handler) threadChanges(r *http.Request) (service.ThreadChanges, error) {
	var changes service.ThreadChanges

	if r.Method == http.MethodPut {
		var body struct {
			ThreadUserID     string   `validate:"required" json:"ThreadUserID"`
			ThreadTitle      string   `validate:"required" json:"ThreadTitle"`
			ThreadImage      string   `json:"ThreadImage"`
			ThreadAccess     int      `json:"ThreadAccess"`
			ThreadCategory   string   `json:"ThreadCategory"`
			ThreadHashtags   []string `json:"ThreadHashtags"`
			ThreadVisibility *bool    `json:"ThreadVisibility"`
		}
		if err := utils.DecodeValidate(r.Body, &body); err != nil {
			return changes, err
		}
		userID, err := parseHex(body.ThreadUserID, "Thread")
		if err != nil {
			return changes, &internal_errors.ErrorWithStatusCode{
				Message:    "Valid ThreadUserID is required.",
				StatusCode: http.StatusBadRequest,
			}
		}
		changes = service.ThreadChanges{
			UserID:     &userID,
			Title:      &body.ThreadTitle,
			Image:      &body.ThreadImage,
			Access:     &body.ThreadAccess,
			Category:   &body.ThreadCategory,
			Hashtags:   (*domain.Hashtags)(&body.ThreadHashtags),
			Visibility: body.ThreadVisibility,
		}
		return changes, nil
	}

	var body struct {
		ThreadUserID     *string   `json:"ThreadUserID"`
		ThreadTitle      *string   `json:"ThreadTitle"`
		ThreadImage      *string   `json:"ThreadImage"`
		ThreadAccess     *int      `json:"ThreadAccess"`
		ThreadCategory   *string   `json:"ThreadCategory"`
		ThreadHashtags   *[]string `json:"ThreadHashtags"`
		ThreadVisibility *bool     `json:"ThreadVisibility"`
	}
	if err := utils.Decode(r.Body, &body); err != nil {
		return changes, err
	}
	if body.ThreadUserID != nil {
		userID, err := parseHex(*body.ThreadUserID, "Thread")
		if err != nil {
			return changes, err
		}
		changes.UserID = &userID
	}
	changes.Title = body.ThreadTitle
	changes.Image = body.ThreadImage
	changes.Access = body.ThreadAccess
	changes.Category = body.ThreadCategory
	changes.Hashtags = (*domain.Hashtags)(body.ThreadHashtags)
	changes.Visibility = body.ThreadVisibility
	return changes, nil
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Thread")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.thread.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Thread deleted"})
}
