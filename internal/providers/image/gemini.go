package image

import (
	"context"

	"cineangle/internal/providers/genai"
)

// GeminiEditor adapts the Gemini client to the Editor contract.
type GeminiEditor struct {
	client *genai.Client
}

func NewGeminiEditor(client *genai.Client) *GeminiEditor {
	return &GeminiEditor{client: client}
}

func (g *GeminiEditor) EditScene(ctx context.Context, src SourceImage, angleDescription string) ([]byte, string, error) {
	return g.client.EditImage(ctx, src.Data, src.MIMEType, BuildInstruction(angleDescription))
}

var _ Editor = (*GeminiEditor)(nil)
