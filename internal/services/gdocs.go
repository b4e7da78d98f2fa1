package services

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// DocsService fetches the plain text of a Google Docs document.
type DocsService struct {
	svc *docs.Service
}

func NewDocsService(ctx context.Context, credentialsFile string) (*DocsService, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("docs credentials not found at %s: %w", credentialsFile, err)
	}

	svc, err := docs.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(docs.DocumentsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}

	return &DocsService{svc: svc}, nil
}

var documentIDPattern = regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`)

// DocumentText resolves the document ID from a Docs URL and returns the
// concatenated text of its body.
func (s *DocsService) DocumentText(ctx context.Context, documentURL string) (string, error) {
	matches := documentIDPattern.FindStringSubmatch(documentURL)
	if len(matches) < 2 {
		return "", &ValidationError{Message: "Invalid document URL"}
	}
	documentID := matches[1]

	doc, err := s.svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}

	var b strings.Builder
	if doc.Body != nil {
		for _, elem := range doc.Body.Content {
			if elem.Paragraph == nil {
				continue
			}
			for _, pe := range elem.Paragraph.Elements {
				if pe.TextRun != nil {
					b.WriteString(pe.TextRun.Content)
				}
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}
