package extract

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the vision model used for score extraction.
const DefaultModel = "gemini-2.0-flash"

const extractionPrompt = `Read the guild score table in this screenshot.
Return a JSON array of objects with exactly two fields per row:
"Name" (the member name as shown) and "Culvert" (the numeric score).
Return only JSON, nothing else.`

// Gemini calls the vision model to pull raw text out of a screenshot. The
// caller feeds the result to DecodeEntries; this type knows nothing about
// the ledger.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the extraction client. Credentials come from the
// environment (GEMINI_API_KEY), as the genai SDK resolves them.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

// ExtractText sends the image and returns the model's raw text response.
func (g *Gemini) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(extractionPrompt),
		}, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty extraction response from %s", g.model)
	}
	return text, nil
}
