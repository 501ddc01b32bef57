package service

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"

	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

type ImageService interface {
	Upload(fileData io.Reader, size int64) (UploadedImage, error)
	Delete(filename string) error
}

type UploadedImage struct {
	Filename string `json:"Filename"`
	Size     int64  `json:"Size"`
	Width    int    `json:"Width"`
	Height   int    `json:"Height"`
}

type ImageStorage interface {
	Save(fileData io.Reader, ext string) (string, int64, error)
	Delete(filename string) error
}

type Image struct {
	storage  ImageStorage
	maxBytes int64
}

func NewImage(storage ImageStorage, maxBytes int64) *Image {
	return &Image{storage: storage, maxBytes: maxBytes}
}

// extForMIME maps the sniffed content type to the stored extension. Only webp
// and jpeg uploads are accepted.
func extForMIME(mime string) (string, bool) {
	switch mime {
	case "image/webp":
		return ".webp", true
	case "image/jpeg":
		return ".jpg", true
	}
	return "", false
}

func (i *Image) Upload(fileData io.Reader, size int64) (UploadedImage, error) {
	if size > i.maxBytes {
		return UploadedImage{}, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Image exceeds the %d byte limit.", i.maxBytes),
			StatusCode: http.StatusBadRequest,
		}
	}

	// Buffer the upload so the bytes can be sniffed, decoded for dimensions
	// and then written out. The size cap keeps this bounded.
	data, err := io.ReadAll(io.LimitReader(fileData, i.maxBytes+1))
	if err != nil {
		return UploadedImage{}, err
	}
	if int64(len(data)) > i.maxBytes {
		return UploadedImage{}, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Image exceeds the %d byte limit.", i.maxBytes),
			StatusCode: http.StatusBadRequest,
		}
	}

	mime := http.DetectContentType(data)
	ext, ok := extForMIME(mime)
	if !ok {
		return UploadedImage{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Image must be webp or jpeg.",
			StatusCode: http.StatusBadRequest,
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return UploadedImage{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Image could not be decoded.",
			StatusCode: http.StatusBadRequest,
		}
	}

	filename, written, err := i.storage.Save(bytes.NewReader(data), ext)
	if err != nil {
		return UploadedImage{}, err
	}
	return UploadedImage{
		Filename: filename,
		Size:     written,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

func (i *Image) Delete(filename string) error {
	return i.storage.Delete(filename)
}
