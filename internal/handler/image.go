package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"

	"github.com/Pangeneses/NeonServer/internal/utils"
)

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.Public.MaxImageSizeBytes); err != nil {
		utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
			Message:    "Invalid multipart form",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
			Message:    "Image file is required.",
			StatusCode: http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	uploaded, err := h.image.Upload(file, header.Size)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Image uploaded",
		"file":    uploaded,
	})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	if err := h.image.Delete(filename); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Image deleted"})
}
