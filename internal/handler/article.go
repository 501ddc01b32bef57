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

// articlePayload is the wire shape of an article. Ids travel as 24-hex
// strings and the category carries its display spacing.
type articlePayload struct {
	ArticleID         string              `json:"ArticleID"`
	ArticleUserID     string              `json:"ArticleUserID"`
	ArticleTitle      string              `json:"ArticleTitle"`
	ArticleBody       string              `json:"ArticleBody"`
	ArticleImage      string              `json:"ArticleImage"`
	ArticleDate       time.Time           `json:"ArticleDate"`
	ArticleCategory   string              `json:"ArticleCategory"`
	ArticleHashtags   []string            `json:"ArticleHashtags"`
	ArticleVisibility bool                `json:"ArticleVisibility"`
	Author            *domain.UserSummary `json:"Author,omitempty"`
}

func toArticlePayload(article domain.Article, author *domain.UserSummary) articlePayload {
	return articlePayload{
		ArticleID:         article.Id.Hex(),
		ArticleUserID:     article.ArticleUserID.Hex(),
		ArticleTitle:      article.ArticleTitle,
		ArticleBody:       article.ArticleBody,
		ArticleImage:      article.ArticleImage,
		ArticleDate:       article.ArticleDate,
		ArticleCategory:   sanitize.CategoryLabel(article.ArticleCategory),
		ArticleHashtags:   article.ArticleHashtags,
		ArticleVisibility: article.ArticleVisibility,
		Author:            author,
	}
}

type createArticleRequest struct {
	ArticleUserID     string   `validate:"required" json:"ArticleUserID"`
	ArticleTitle      string   `validate:"required" json:"ArticleTitle"`
	ArticleBody       string   `validate:"required" json:"ArticleBody"`
	ArticleImage      string   `json:"ArticleImage"`
	ArticleCategory   string   `json:"ArticleCategory"`
	ArticleHashtags   []string `json:"ArticleHashtags"`
	ArticleVisibility *bool    `json:"ArticleVisibility"`
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var body createArticleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := parseHex(body.ArticleUserID, "Article")
	if err != nil {
		utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
			Message:    "User ID is required.",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	article := domain.Article{
		ArticleUserID:     userID,
		ArticleTitle:      body.ArticleTitle,
		ArticleBody:       body.ArticleBody,
		ArticleImage:      body.ArticleImage,
		ArticleCategory:   body.ArticleCategory,
		ArticleHashtags:   body.ArticleHashtags,
		ArticleVisibility: true,
	}
	if body.ArticleVisibility != nil {
		article.ArticleVisibility = *body.ArticleVisibility
	}

	created, err := h.article.Create(r.Context(), article)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Article created",
		"Article": toArticlePayload(created, nil),
	})
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Article")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	listing, err := h.article.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"Article": toArticlePayload(listing.Article, listing.Author),
	})
}

func (h *Handler) ChunkArticles(w http.ResponseWriter, r *http.Request) {
	q := pagination.ParseChunk(r.URL.Query(), "Article", h.chunkLimits())

	listings, err := h.article.Chunk(r.Context(), q)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	payloads := make([]articlePayload, 0, len(listings))
	for _, listing := range listings {
		payloads = append(payloads, toArticlePayload(listing.Article, listing.Author))
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"Articles": payloads})
}

// UpdateArticle handles both PUT (full replace, all fields required) and
// PATCH (only the supplied fields change).
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Article")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	changes, err := h.articleChanges(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	listing, err := h.article.Update(r.Context(), id, changes)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Article updated",
		"Article": toArticlePayload(listing.Article, listing.Author),
	})
}

func (h *Handler) articleChanges(r *http.Request) (service.ArticleChanges, error) {
	var changes service.ArticleChanges

	if r.Method == http.MethodPut {
		var body createArticleRequest
		if err := utils.DecodeValidate(r.Body, &body); err != nil {
			return changes, err
		}
		userID, err := parseHex(body.ArticleUserID, "Article")
		if err != nil {
			return changes, &internal_errors.ErrorWithStatusCode{
				Message:    "User ID is required.",
				StatusCode: http.StatusBadRequest,
			}
		}
		changes = service.ArticleChanges{
			UserID:     &userID,
			Title:      &body.ArticleTitle,
			Body:       &body.ArticleBody,
			Image:      &body.ArticleImage,
			Category:   &body.ArticleCategory,
			Hashtags:   (*domain.Hashtags)(&body.ArticleHashtags),
			Visibility: body.ArticleVisibility,
		}
		return changes, nil
	}

	var body struct {
		ArticleUserID     *string   `json:"ArticleUserID"`
		ArticleTitle      *string   `json:"ArticleTitle"`
		ArticleBody       *string   `json:"ArticleBody"`
		ArticleImage      *string   `json:"ArticleImage"`
		ArticleCategory   *string   `json:"ArticleCategory"`
		ArticleHashtags   *[]string `json:"ArticleHashtags"`
		ArticleVisibility *bool     `json:"ArticleVisibility"`
	}
	if err := utils.Decode(r.Body, &body); err != nil {
		return changes, err
	}
	if body.ArticleUserID != nil {
		userID, err := parseHex(*body.ArticleUserID, "Article")
		if err != nil {
			return changes, err
		}
		changes.UserID = &userID
	}
	changes.Title = body.ArticleTitle
	changes.Body = body.ArticleBody
	changes.Image = body.ArticleImage
	changes.Category = body.ArticleCategory
	changes.Hashtags = (*domain.Hashtags)(body.ArticleHashtags)
	changes.Visibility = body.ArticleVisibility
	return changes, nil
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Article")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.article.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}
