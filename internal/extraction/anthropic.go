package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultModel            = "claude-3-5-sonnet-20240620"
	anthropicVersion        = "2023-06-01"
)

// AnthropicConfig holds the settings for the direct Anthropic API backend.
// Credentials are passed explicitly; the backend never reads the process
// environment.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Anthropic implements the Backend interface against the Anthropic Messages
// API.
type Anthropic struct {
	cfg    AnthropicConfig
	client *http.Client
}

// NewAnthropic creates a new Anthropic backend instance
func NewAnthropic(cfg AnthropicConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAnthropicBaseURL
	}

	return &Anthropic{
		cfg: cfg,
		client: &http.Client{
			Timeout: 120 * time.Second, // vision requests with several pages can be slow
		},
	}, nil
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicContent struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Invoke sends the instruction and page images to the Messages API and
// returns the model's raw text answer. Page images come before the
// instruction text; the ordering is not semantic.
func (a *Anthropic) Invoke(ctx context.Context, prompt string, images []string, maxTokens int) (string, error) {
	content := make([]anthropicContent, 0, len(images)+1)
	for _, img := range images {
		content = append(content, anthropicContent{
			Type: "image",
			Source: &anthropicImageSource{
				Type:      "base64",
				MediaType: "image/jpeg",
				Data:      img,
			},
		})
	}
	content = append(content, anthropicContent{Type: "text", Text: prompt})

	reqBody := anthropicRequest{
		Model:     a.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: content},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := a.cfg.BaseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling anthropic API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
	}

	var msgResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("no content in anthropic response")
	}

	return msgResp.Content[0].Text, nil
}

// Close closes the Anthropic backend (no-op for HTTP client)
func (a *Anthropic) Close() error {
	return nil
}
