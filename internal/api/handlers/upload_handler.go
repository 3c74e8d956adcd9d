package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/ananyajain10/pitchparse-ai/internal/batch"
	"github.com/ananyajain10/pitchparse-ai/internal/core/extract"
	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

type UploadHandler struct {
	orch *batch.Orchestrator
}

func NewUploadHandler(orch *batch.Orchestrator) *UploadHandler {
	return &UploadHandler{orch: orch}
}

// Upload accepts a multipart batch under the "files" field, creates one
// tracked job per file and dispatches extraction. An unsupported file becomes
// a failed job, never a failed request, so the rest of the batch proceeds.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	var files []extract.SourceFile
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			http.Error(w, "invalid file", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, "reading upload failed", http.StatusBadRequest)
			return
		}

		// Strip any path components the client sent along.
		cleanName := filepath.Base(header.Filename)

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(cleanName))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		files = append(files, extract.SourceFile{
			Name:        cleanName,
			ContentType: contentType,
			Data:        data,
		})
	}

	// Extraction outlives the upload request; jobs settle in the background.
	jobs := h.orch.Submit(context.Background(), files)
	log.Printf("upload: created %d jobs", len(jobs))

	writeJSON(w, http.StatusAccepted, jobs)
}

type jobListResponse struct {
	Jobs            []models.UploadJob `json:"jobs"`
	HasUsableResult bool               `json:"has_usable_result"`
}

// List returns the current job snapshot plus whether the batch already holds
// at least one extraction worth sending.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jobListResponse{
		Jobs:            h.orch.Jobs(),
		HasUsableResult: h.orch.HasUsableResult(),
	})
}

// Remove discards a job by ID in any state; an in-flight extraction keeps
// running and its result is dropped.
func (h *UploadHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	if !h.orch.Remove(id) {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handlers: encoding response: %v", err)
	}
}
