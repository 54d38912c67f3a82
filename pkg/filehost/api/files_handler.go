// Package api exposes the filehost service over HTTP.
package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/simplehost/filehost/pkg/filehost"
	"github.com/simplehost/filehost/pkg/filehost/preview"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in memory
// before spilling to disk
const maxUploadMemory = 32 << 20

// FilesHandler handles file upload and management API endpoints
type FilesHandler struct {
	service filehost.Service
}

func NewFilesHandler(service filehost.Service) *FilesHandler {
	return &FilesHandler{service: service}
}

// Routes returns the router for files endpoints
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	r.Get("/", h.List)
	r.Get("/{id}/download", h.Download)
	r.Get("/{id}/view", h.View)
	r.Delete("/{id}", h.Delete)
	return r
}

// UploadResponse represents the response after a successful upload
type UploadResponse struct {
	Message string               `json:"message"`
	File    *filehost.FileRecord `json:"file"`
}

// ErrorResponse is the JSON body for all failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// Upload accepts a multipart form with a single "file" field
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, filehost.ErrNoFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, filehost.ErrNoFile)
		return
	}
	defer file.Close()

	record, err := h.service.UploadFile(r.Context(), filehost.UploadFileRequest{
		Reader:      file,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("file uploaded", "file_id", record.ID.String(),
		"name", record.OriginalName, "size_bytes", record.SizeBytes)
	render.JSON(w, r, UploadResponse{
		Message: "File uploaded successfully",
		File:    record,
	})
}

// List returns all file records, newest first
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListFiles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if records == nil {
		records = []*filehost.FileRecord{}
	}
	render.JSON(w, r, records)
}

// Download streams the original bytes as an attachment
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	result, err := h.service.DownloadFile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer result.Reader.Close()

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(result.SizeBytes, 10))

	if _, err := io.Copy(w, result.Reader); err != nil {
		// Headers are gone; nothing to do but log
		slog.Error("failed to stream download", "file_id", id.String(), "error", err)
	}
}

// View serves the file inline per its preview strategy
func (h *FilesHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	result, err := h.service.PreviewFile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	if result.Category != preview.CategoryText {
		w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	}
	w.Write(result.Data)
}

// Delete removes a file's metadata and content
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteFile(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("file deleted", "file_id", id.String())
	render.JSON(w, r, map[string]string{"message": "File deleted successfully"})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Warn("invalid file id", "id", idStr)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid file id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to HTTP statuses: 404 for unknown ids and
// missing blobs, 400 for policy refusals and bad payloads, 500 otherwise.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string

	switch {
	case errors.Is(err, filehost.ErrFileNotFound):
		status, msg = http.StatusNotFound, "File not found"
	case errors.Is(err, filehost.ErrBlobMissing):
		status, msg = http.StatusNotFound, "File not found on disk"
	case errors.Is(err, filehost.ErrNoFile):
		status, msg = http.StatusBadRequest, "No file uploaded"
	case errors.Is(err, filehost.ErrNotPreviewable):
		status, msg = http.StatusBadRequest,
			"Cannot preview this file type. Supported types: images, text files, PDF, video, and audio files."
	case errors.Is(err, filehost.ErrReadFailure):
		status, msg = http.StatusBadRequest, fmt.Sprintf("Cannot read file: %v", err)
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		status, msg = http.StatusInternalServerError, err.Error()
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
