package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vessoni/MeetApp/internal/delivery/http/helpers"
	"github.com/vessoni/MeetApp/internal/delivery/http/middleware"
	"github.com/vessoni/MeetApp/internal/domain"
)

// maxUploadSize caps meetup banner uploads at 5 MiB.
const maxUploadSize = 5 << 20

type FileController struct {
	Logger  *slog.Logger
	Service domain.FileService
}

func NewFileController(logger *slog.Logger, svc domain.FileService) *FileController {
	return &FileController{
		Logger:  logger,
		Service: svc,
	}
}

// Upload godoc
// @Summary Upload a file
// @Description Stores a multipart upload (field "file") and returns its metadata; meetups reference it by image_id.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /files [post]
func (c *FileController) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	src, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing or invalid file field")
		return
	}
	defer src.Close()

	file, err := c.Service.Store(r.Context(), header.Filename, src)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid file name")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, file)
}
