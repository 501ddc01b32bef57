package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
	"github.com/Pangeneses/NeonServer/internal/pagination"
)

// chunkLimits exposes the configured chunk size bounds to the paging
// endpoints. Without a config the engine's own defaults apply.
func (h *Handler) chunkLimits() pagination.Limits {
	if h.cfg == nil {
		return pagination.Limits{}
	}
	return pagination.Limits{
		Default: h.cfg.Public.DefaultChunkLimit,
		Max:     h.cfg.Public.MaxChunkLimit,
	}
}

// pathID pulls a 24-hex ObjectID out of the route. label names the resource
// in the error message, e.g. "Article" yields "Invalid Article ID".
func pathID(r *http.Request, name, label string) (primitive.ObjectID, error) {
	raw := mux.Vars(r)[name]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Invalid %s ID", label),
			StatusCode: http.StatusBadRequest,
		}
	}
	return id, nil
}

// parseHex is pathID for ids arriving in bodies or query strings.
func parseHex(raw, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Invalid %s ID", label),
			StatusCode: http.StatusBadRequest,
		}
	}
	return id, nil
}
