// Package narrative generates the report's French analysis text with
// an AWS Bedrock-hosted model.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	appconfig "github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/pkg/logger"
)

// Fallback is returned whenever the model cannot be reached or its
// response cannot be parsed; the job continues with it.
const Fallback = "AI insights generation unavailable. Please review the data manually."

const anthropicVersion = "bedrock-2023-05-31"

// invokeRequest is the anthropic-on-bedrock InvokeModel payload.
type invokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []message `json:"messages"`
	Temperature      float64   `json:"temperature,omitempty"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// invokeResponse is the subset of the model response we consume.
type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generator produces narrative text via Bedrock.
type Generator struct {
	client    *bedrockruntime.Client
	modelID   string
	maxTokens int
}

// NewGenerator creates a Bedrock narrative generator.
func NewGenerator(ctx context.Context, cfg appconfig.BedrockConfig) (*Generator, error) {
	awsCfg, err := sdkconfig.LoadDefaultConfig(ctx,
		sdkconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Generator{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelID:   cfg.ModelID,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// ModelID returns the configured model identifier.
func (g *Generator) ModelID() string {
	return g.modelID
}

// Generate asks the model for prose. Any failure is absorbed: the
// fixed Fallback string is returned and a warning logged, so the job
// never aborts on narrative trouble.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	request := invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        g.maxTokens,
		Messages: []message{{
			Role:    "user",
			Content: []contentBlock{{Type: "text", Text: prompt}},
		}},
		Temperature: 0.7,
	}

	body, err := json.Marshal(request)
	if err != nil {
		logger.Warn("narrative request marshal failed", "error", err)
		return Fallback
	}

	output, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		logger.Warn("narrative generation failed", "model", g.modelID, "error", err)
		return Fallback
	}

	var response invokeResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		logger.Warn("narrative response parse failed", "error", err)
		return Fallback
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		logger.Warn("narrative response carried no text", "stop_reason", response.StopReason)
		return Fallback
	}

	logger.Info("narrative generated",
		"model", g.modelID,
		"input_tokens", response.Usage.InputTokens,
		"output_tokens", response.Usage.OutputTokens)

	return text
}
