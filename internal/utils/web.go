package utils

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

// WriteJSON writes v with the given status. Encoding failures are logged;
// headers are already gone at that point so nothing else can be done.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// WriteError renders err as the { "error": ... } envelope. Schema violations
// additionally carry a field-level details map. Anything without an explicit
// status code is a 500 with a generic body; the real error is only logged.
func WriteError(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.SchemaError); ok {
		WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   e.Error(),
			"details": e.Details,
		})
		return
	}
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		WriteJSON(w, e.StatusCode, map[string]string{"error": e.Message})
		return
	}
	// default error is 500
	slog.Error("internal error", "err", err)
	WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func DecodeValidate(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		slog.Debug("invalid request body", "err", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		slog.Debug("request body failed validation", "err", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		slog.Debug("invalid request body", "err", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
