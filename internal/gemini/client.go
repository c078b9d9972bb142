// Package gemini wraps the generative-AI SDK behind the narrow surface the
// image operations need: send role-tagged parts, get back image blobs and
// text.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Blob is one piece of inline image data returned by the model.
type Blob struct {
	Data     []byte
	MIMEType string
}

// Reply is the decoded remote response: every inline image across all
// candidates in response order, plus the concatenated text parts.
type Reply struct {
	Images []Blob
	Text   string
}

// GenerateConfig carries the per-call generation knobs. A nil config
// requests a plain text reply.
type GenerateConfig struct {
	Seed           *int32
	CandidateCount int32
}

// Client sends requests to the Gemini API with a fixed model and safety
// configuration.
type Client struct {
	api    *genai.Client
	model  string
	safety []*genai.SafetySetting
}

// NewClient builds a Client for the given model. safetyLevel is one of
// "none", "low", "medium", "high".
func NewClient(ctx context.Context, apiKey, model, safetyLevel string) (*Client, error) {
	settings, err := SafetySettings(safetyLevel)
	if err != nil {
		return nil, err
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{api: api, model: model, safety: settings}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Call sends one user-role request and decodes the response. No deadline is
// imposed here; callers wanting bounded latency pass a ctx with one.
func (c *Client) Call(ctx context.Context, parts []*genai.Part, cfg *GenerateConfig) (*Reply, error) {
	genCfg := &genai.GenerateContentConfig{SafetySettings: c.safety}
	if cfg != nil {
		genCfg.Seed = cfg.Seed
		if cfg.CandidateCount > 0 {
			genCfg.CandidateCount = cfg.CandidateCount
		}
		// Image output must be requested explicitly or the model only
		// answers in text.
		genCfg.ResponseModalities = []string{"TEXT", "IMAGE"}
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return nil, err
	}

	reply := extractReply(resp)
	if len(reply.Images) == 0 && reply.Text == "" {
		return nil, fmt.Errorf("model returned no usable content")
	}
	return reply, nil
}

// extractReply walks every candidate part, collecting inline image data in
// response order and joining the text parts.
func extractReply(resp *genai.GenerateContentResponse) *Reply {
	reply := &Reply{}
	var texts []string

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				reply.Images = append(reply.Images, Blob{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				})
			}
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}

	reply.Text = strings.Join(texts, "\n")
	return reply
}

// SafetySettings maps one of the four named levels onto a block threshold
// applied uniformly across the standard harm categories.
func SafetySettings(level string) ([]*genai.SafetySetting, error) {
	var threshold genai.HarmBlockThreshold
	switch strings.ToLower(level) {
	case "none":
		threshold = genai.HarmBlockThresholdBlockNone
	case "low":
		threshold = genai.HarmBlockThresholdBlockOnlyHigh
	case "medium":
		threshold = genai.HarmBlockThresholdBlockMediumAndAbove
	case "high":
		threshold = genai.HarmBlockThresholdBlockLowAndAbove
	default:
		return nil, fmt.Errorf("unknown safety level %q", level)
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, cat := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  cat,
			Threshold: threshold,
		})
	}
	return settings, nil
}
