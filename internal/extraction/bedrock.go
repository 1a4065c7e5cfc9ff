package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	defaultBedrockRegion  = "us-east-1"
	defaultBedrockModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"

	// API contract version required by Bedrock for Anthropic models
	bedrockAnthropicVersion = "bedrock-2023-05-31"
)

// BedrockConfig holds the settings for the AWS Bedrock backend. Session
// credentials come from the standard AWS credential chain at construction
// time.
type BedrockConfig struct {
	Region  string
	ModelID string
}

// Bedrock implements the Backend interface through the AWS Bedrock model
// invocation runtime. It addresses the same Claude model version as the
// direct API backend and produces a wire-compatible response envelope.
type Bedrock struct {
	cfg    BedrockConfig
	client *bedrockruntime.Client
}

// NewBedrock creates a new Bedrock backend instance
func NewBedrock(ctx context.Context, cfg BedrockConfig) (*Bedrock, error) {
	if cfg.Region == "" {
		cfg.Region = defaultBedrockRegion
	}
	if cfg.ModelID == "" {
		cfg.ModelID = defaultBedrockModelID
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Bedrock{
		cfg:    cfg,
		client: bedrockruntime.NewFromConfig(awsCfg),
	}, nil
}

type bedrockRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

// Invoke sends the instruction and page images through Bedrock's InvokeModel
// call and returns the model's raw text answer. The instruction text comes
// before the page images here; the ordering is not semantic.
func (b *Bedrock) Invoke(ctx context.Context, prompt string, images []string, maxTokens int) (string, error) {
	content := make([]anthropicContent, 0, len(images)+1)
	content = append(content, anthropicContent{Type: "text", Text: prompt})
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

	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: bedrockAnthropicVersion,
		MaxTokens:        maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("calling bedrock: %w", err)
	}

	var msgResp anthropicResponse
	if err := json.Unmarshal(out.Body, &msgResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("no content in bedrock response")
	}

	return msgResp.Content[0].Text, nil
}

// Close closes the Bedrock backend (no-op for the SDK client)
func (b *Bedrock) Close() error {
	return nil
}
