package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"eduaid-backend/internal/models"
)

const maxUploadBytes = 10 << 20

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
}

type DocumentFetcher interface {
	DocumentText(ctx context.Context, documentURL string) (string, error)
}

type FileExtractor interface {
	Extract(r io.ReaderAt, size int64, ext string) (string, error)
}

type ContentHandler struct {
	docs  DocumentFetcher
	files FileExtractor
}

func NewContentHandler(docs DocumentFetcher, files FileExtractor) *ContentHandler {
	return &ContentHandler{docs: docs, files: files}
}

// GetContent pulls the plain text of a Google Doc referenced by URL.
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	var req models.ContentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, "Failed to fetch document content")
		return
	}

	url := strings.TrimSpace(req.DocumentURL)
	if url == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("No document URL provided"))
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid document URL"))
		return
	}

	if h.docs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Google Docs service not available"))
		return
	}

	text, err := h.docs.DocumentText(r.Context(), url)
	if err != nil {
		handleServiceError(w, r, err, "Failed to fetch document content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

// Upload extracts plain text from an uploaded pdf, txt, or docx file.
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("No file part in the request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("No file part in the request"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("No selected file"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		writeJSON(w, http.StatusBadRequest, errorResp("Unsupported file type"))
		return
	}

	if header.Size > maxUploadBytes {
		writeJSON(w, http.StatusBadRequest, errorResp("File too large (max 10MB)"))
		return
	}
	if header.Size == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("Empty file provided"))
		return
	}

	content, err := h.files.Extract(file, header.Size, strings.TrimPrefix(ext, "."))
	if err != nil {
		handleServiceError(w, r, err, "Failed to extract file content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}
