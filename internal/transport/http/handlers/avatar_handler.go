package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/vedran77/budgeter/internal/service"
	"github.com/vedran77/budgeter/internal/transport/http/middleware"
)

type AvatarHandler struct {
	avatarService *service.AvatarService
}

func NewAvatarHandler(avatarService *service.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: avatarService}
}

// maxUploadBody leaves headroom above the image cap for multipart framing.
const maxUploadBody = service.MaxAvatarBytes + 4096

// Upload expects a multipart form with the image under the "avatar" field.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	// Cut oversized bodies off at the transport instead of buffering
	// them to disk before the size check.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "Avatar must be at most 2 MiB")
			return
		}
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "Missing avatar file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILE", "Could not read avatar file")
		return
	}

	avatar, err := h.avatarService.Upload(r.Context(), username, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedImage):
			writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_IMAGE", "Only png and jpeg images are supported")
		case errors.Is(err, service.ErrImageTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "Avatar must be at most 2 MiB")
		default:
			log.Printf("ERROR upload avatar: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, avatar)
}

func (h *AvatarHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	view, err := h.avatarService.GetLatest(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNoAvatar) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "No avatar uploaded")
		} else {
			log.Printf("ERROR get avatar: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}
