package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apdesk/invoice-vision/internal/document"
	"github.com/apdesk/invoice-vision/internal/extraction"
)

// Extractor runs one extraction call against prepared page images.
type Extractor interface {
	Extract(ctx context.Context, images []string) (*extraction.ExtractionResult, error)
	Close() error
}

// PrepareFunc turns an uploaded document into base64-encoded page images.
type PrepareFunc func(data []byte, contentType string) ([]string, error)

// Service runs the document pipeline: prepare pages, then extract. It is
// stateless; every call is independent and nothing is persisted or cached
// across calls.
type Service struct {
	extractor Extractor
	prepare   PrepareFunc
}

// NewService creates a new Service using the standard upload preparation
func NewService(extractor Extractor) *Service {
	return &Service{
		extractor: extractor,
		prepare:   document.PrepareUpload,
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(extractor Extractor, prepare PrepareFunc) *Service {
	return &Service{
		extractor: extractor,
		prepare:   prepare,
	}
}

// ProcessDocument renders an uploaded document to page images and extracts
// invoice data from them. There is no partial-success mode: a failure at any
// stage fails the whole document.
func (s *Service) ProcessDocument(ctx context.Context, filename string, data []byte, contentType string) (*extraction.ExtractionResult, error) {
	images, err := s.prepare(data, contentType)
	if err != nil {
		slog.Error("Failed to prepare document",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("preparing document: %w", err)
	}

	result, err := s.extractor.Extract(ctx, images)
	if err != nil {
		slog.Error("Failed to extract invoice data",
			"filename", filename,
			"pages", len(images),
			"error", err,
		)
		return nil, fmt.Errorf("extracting invoice data: %w", err)
	}

	return result, nil
}
