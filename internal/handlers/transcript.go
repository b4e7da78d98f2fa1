package handlers

import (
	"context"
	"net/http"

	"eduaid-backend/internal/validate"
)

type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

type TranscriptHandler struct {
	transcripts TranscriptFetcher
}

func NewTranscriptHandler(transcripts TranscriptFetcher) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// GetTranscript downloads and cleans the English subtitle track of a YouTube
// video. The ID is validated before any external tool runs.
func (h *TranscriptHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("videoId")
	if err := validate.VideoID(videoID); err != nil {
		handleServiceError(w, r, err, "Failed to fetch transcript")
		return
	}

	if h.transcripts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Transcript service not available"))
		return
	}

	transcript, err := h.transcripts.Fetch(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to fetch transcript")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transcript": transcript})
}
