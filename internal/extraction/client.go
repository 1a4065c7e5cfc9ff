package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxTokens is the generation budget for multi-page documents.
// LegacyMaxTokens matches the older single-image budget; callers that bundle
// more than one page image must use the higher budget.
const (
	DefaultMaxTokens = 4096
	LegacyMaxTokens  = 1000
)

// Client sends page images to a backend and turns the raw model answer into
// a typed ExtractionResult. It is stateless across calls and holds no retry
// or backoff logic; any failure is terminal for the document.
type Client struct {
	backend   Backend
	maxTokens int
	logger    *slog.Logger
}

// NewClient creates a new extraction Client. A non-positive maxTokens
// selects the default budget.
func NewClient(backend Backend, maxTokens int, logger *slog.Logger) *Client {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		backend:   backend,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Extract sends the base64-encoded page images plus the fixed instruction to
// the backend and normalizes the answer. Transport failures, backend error
// statuses, non-JSON answers, and wrong-shape envelopes all come back as a
// nil result with an error; nothing panics past this boundary.
func (c *Client) Extract(ctx context.Context, images []string) (*ExtractionResult, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no page images to extract from")
	}

	reqID := uuid.New().String()
	start := time.Now()

	c.logger.Info("extract.request",
		"req_id", reqID,
		"images", len(images),
		"max_tokens", c.maxTokens,
	)

	text, err := c.backend.Invoke(ctx, invoiceExtractionPrompt, images, c.maxTokens)
	if err != nil {
		c.logger.Error("extract.invoke_error",
			"req_id", reqID,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("invoking model: %w", err)
	}

	raw, err := extractJSON(text)
	if err != nil {
		c.logger.Error("extract.decode_error",
			"req_id", reqID,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("decoding model answer: %w", err)
	}

	if err := validateEnvelope(raw); err != nil {
		c.logger.Error("extract.schema_error",
			"req_id", reqID,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	result, err := Normalize(raw)
	if err != nil {
		c.logger.Error("extract.normalize_error",
			"req_id", reqID,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.logger.Info("extract.ok",
		"req_id", reqID,
		"document_type", string(result.DocumentType),
		"invoices", len(result.Invoices),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Close closes the underlying backend.
func (c *Client) Close() error {
	return c.backend.Close()
}
