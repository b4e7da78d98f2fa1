package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
)

// downloadTimeout bounds the external yt-dlp invocation.
const downloadTimeout = 60 * time.Second

// TranscriptService downloads auto-generated subtitles for a video with
// yt-dlp, cleans them into a transcript, and removes the temporary subtitle
// file before returning. When yt-dlp yields no subtitles it falls back to the
// transcript API and then to a direct caption-track fetch.
type TranscriptService struct {
	ytDlpPath     string
	subtitlesDir  string
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

func NewTranscriptService(ytDlpPath, subtitlesDir string) *TranscriptService {
	return &TranscriptService{
		ytDlpPath:     ytDlpPath,
		subtitlesDir:  subtitlesDir,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
	}
}

// Fetch retrieves and cleans the transcript for videoID. Error mapping:
// TimeoutError when the download exceeds its deadline, UnavailableError when
// yt-dlp is not installed, NotFoundError when no usable subtitles exist.
func (s *TranscriptService) Fetch(ctx context.Context, videoID string) (string, error) {
	if err := os.MkdirAll(s.subtitlesDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create subtitles dir: %w", err)
	}

	// Request-scoped name so concurrent fetches of one video never collide.
	base := filepath.Join(s.subtitlesDir, fmt.Sprintf("%s-%s", videoID, uuid.NewString()))

	dlCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	cmd := exec.CommandContext(dlCtx, s.ytDlpPath,
		"--write-auto-sub", "--sub-lang", "en", "--skip-download",
		"--sub-format", "vtt", "-o", base,
		"https://www.youtube.com/watch?v="+videoID)

	runErr := cmd.Run()

	// yt-dlp appends the language and format to the output template.
	files, _ := filepath.Glob(base + "*.vtt")
	defer func() {
		for _, f := range files {
			if err := os.Remove(f); err != nil {
				log.Printf("Failed to clean up subtitle file %s: %v", f, err)
			}
		}
	}()

	if runErr != nil {
		if dlCtx.Err() == context.DeadlineExceeded {
			log.Printf("Transcript download timed out for video %s", videoID)
			return "", &TimeoutError{Message: "Transcript download timed out"}
		}
		var execErr *exec.Error
		if errors.As(runErr, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			log.Printf("yt-dlp not found at %q", s.ytDlpPath)
			return "", &UnavailableError{Message: "Transcript service unavailable (yt-dlp not found)"}
		}
		log.Printf("yt-dlp failed for video %s: %v", videoID, runErr)
	}

	if len(files) > 0 {
		latest := files[0]
		var latestMod time.Time
		for _, f := range files {
			if info, err := os.Stat(f); err == nil && info.ModTime().After(latestMod) {
				latestMod = info.ModTime()
				latest = f
			}
		}

		if text := s.cleanTranscriptFile(latest); text != "" {
			return text, nil
		}
	}

	// yt-dlp produced nothing usable; try the API-based fallbacks before
	// reporting the video as subtitle-less.
	if text, err := s.fetchViaTranscriptAPI(videoID); err == nil {
		return text, nil
	} else {
		log.Printf("Transcript API fallback failed for %s: %v", videoID, err)
	}

	if text, err := s.fetchViaCaptionTrack(ctx, videoID); err == nil {
		return text, nil
	} else {
		log.Printf("Caption track fallback failed for %s: %v", videoID, err)
	}

	return "", &NotFoundError{Message: "No subtitles found for this video"}
}

// cleanTranscriptFile reads a VTT file and extracts its transcript. Read
// failures are logged and degrade to an empty transcript.
func (s *TranscriptService) cleanTranscriptFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Failed to read transcript file: %v", err)
		return ""
	}
	return CleanTranscriptLines(strings.Split(string(data), "\n"))
}

var inlineTagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanTranscriptLines extracts a transcript from the lines of a VTT caption
// file. The parser starts in a metadata-skipping state and switches to
// collecting once the first timestamp-range line appears; timestamp lines are
// themselves discarded, inline markup tags are stripped from caption lines,
// and the surviving lines are joined with single spaces.
func CleanTranscriptLines(lines []string) string {
	var collected []string
	skipMetadata := true

	for _, line := range lines {
		line = strings.TrimSpace(line)

		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "webvtt") ||
			strings.HasPrefix(lower, "kind:") ||
			strings.HasPrefix(lower, "language:") {
			continue
		}

		// Only a timestamp-range line flips the parser into collecting.
		if strings.Contains(line, "-->") {
			skipMetadata = false
			continue
		}

		if skipMetadata {
			continue
		}

		line = strings.TrimSpace(inlineTagPattern.ReplaceAllString(line, ""))
		if line != "" {
			collected = append(collected, line)
		}
	}

	return strings.TrimSpace(strings.Join(collected, " "))
}

func (s *TranscriptService) fetchViaTranscriptAPI(videoID string) (string, error) {
	transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		// Any available language beats no transcript at all.
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
		if err != nil {
			return "", fmt.Errorf("no transcript via API: %w", err)
		}
	}

	if len(transcript.Entries) == 0 {
		return "", fmt.Errorf("subtitle track is empty")
	}

	var b strings.Builder
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString(" ")
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return "", fmt.Errorf("subtitle text resolved to empty content")
	}
	return cleaned, nil
}

func (s *TranscriptService) fetchViaCaptionTrack(ctx context.Context, videoID string) (string, error) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	if len(video.CaptionTracks) == 0 {
		return "", fmt.Errorf("no caption tracks available")
	}

	track := video.CaptionTracks[0]
	for _, t := range video.CaptionTracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			track = t
			break
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch caption track: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption track: %w", err)
	}

	return parseCaptionsXML(body)
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func parseCaptionsXML(data []byte) (string, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", err
	}

	var parts []string
	for _, t := range tt.Texts {
		text := html.UnescapeString(t.Text)
		text = strings.TrimSpace(text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("captions XML empty")
	}

	return strings.Join(parts, " "), nil
}
