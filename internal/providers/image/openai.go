package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIOptions configures the alternative OpenAI edit backend.
type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIEditor implements Editor on top of the OpenAI image edit endpoint.
type OpenAIEditor struct {
	client *openai.Client
	model  string
}

func NewOpenAIEditor(opts OpenAIOptions) (*OpenAIEditor, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = "gpt-image-1"
	}
	return &OpenAIEditor{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (o *OpenAIEditor) EditScene(ctx context.Context, src SourceImage, angleDescription string) ([]byte, string, error) {
	resp, err := o.client.CreateEditImage(ctx, openai.ImageEditRequest{
		Image:  openai.WrapReader(bytes.NewReader(src.Data), "source.png", src.MIMEType),
		Prompt: BuildInstruction(angleDescription),
		Model:  o.model,
		N:      1,
	})
	if err != nil {
		return nil, "", fmt.Errorf("openai image edit: %w", err)
	}
	for _, item := range resp.Data {
		if item.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return nil, "", fmt.Errorf("decode openai image: %w", err)
		}
		return data, "image/png", nil
	}
	// The endpoint answered without image payloads; treated the same as a
	// text-only Gemini response.
	return nil, "", nil
}

var _ Editor = (*OpenAIEditor)(nil)
