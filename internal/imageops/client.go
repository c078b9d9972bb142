// Package imageops implements the five image operations behind the tool
// gateway. Every operation runs the same three phases: rate-limit admission,
// remote dispatch, result materialization. Operations hold no state between
// calls beyond the shared limiter window.
package imageops

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"gemini-image-mcp/internal/analysis"
	"gemini-image-mcp/internal/gemini"
	"gemini-image-mcp/internal/imgmeta"
	"gemini-image-mcp/internal/prompt"
	"gemini-image-mcp/internal/ratelimit"
)

// Remote is the generative collaborator. *gemini.Client satisfies it.
type Remote interface {
	Call(ctx context.Context, parts []*genai.Part, cfg *gemini.GenerateConfig) (*gemini.Reply, error)
	Model() string
}

// Client orchestrates the image operations against one remote model with
// one shared rate-limit window.
type Client struct {
	remote  Remote
	limiter *ratelimit.Limiter
	log     *logrus.Logger
}

// NewClient wires the operations client. The limiter belongs to this client
// alone; callers must not share it.
func NewClient(remote Remote, limiter *ratelimit.Limiter, log *logrus.Logger) *Client {
	return &Client{remote: remote, limiter: limiter, log: log}
}

// Generate produces images from a text prompt.
func (c *Client) Generate(ctx context.Context, req GenerationRequest) ([]GeneratedImage, error) {
	if err := c.limiter.Admit(); err != nil {
		return nil, err
	}

	text := prompt.Generation(req.Prompt, req.Style, req.AspectRatio, req.Quality)
	n := req.NumberOfImages
	if n < 1 {
		n = 1
	}

	c.log.WithFields(logrus.Fields{"operation": "generate", "images": n}).Debug("dispatching remote call")

	reply, err := c.remote.Call(ctx, []*genai.Part{{Text: text}}, &gemini.GenerateConfig{
		Seed:           req.Seed,
		CandidateCount: int32(n),
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(reply.Images) == 0 {
		return nil, fmt.Errorf("image generation failed: model returned no image data")
	}

	images := make([]GeneratedImage, 0, len(reply.Images))
	for _, blob := range reply.Images {
		images = append(images, c.materialize(blob, map[string]string{"prompt": text}))
	}
	return images, nil
}

// Modify edits an existing image according to free-text instructions.
func (c *Client) Modify(ctx context.Context, req ModificationRequest) (*GeneratedImage, error) {
	if err := c.limiter.Admit(); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return nil, fmt.Errorf("image modification failed: invalid image payload: %w", err)
	}

	instruction := prompt.Modification(req.Instructions, req.PreserveStyle)
	parts := []*genai.Part{
		{Text: instruction},
		imagePart(data),
	}

	c.log.WithField("operation", "modify").Debug("dispatching remote call")

	reply, err := c.remote.Call(ctx, parts, &gemini.GenerateConfig{})
	if err != nil {
		return nil, fmt.Errorf("image modification failed: %w", err)
	}
	if len(reply.Images) == 0 {
		return nil, fmt.Errorf("image modification failed: model returned no image data")
	}

	meta := map[string]string{"instructions": instruction}
	if req.Strength > 0 {
		meta["strength"] = strconv.FormatFloat(req.Strength, 'f', -1, 64)
	}
	img := c.materialize(reply.Images[0], meta)
	return &img, nil
}

// Analyze asks the model to examine an image and parses its prose answer
// into a typed result. Parsing never fails; unmatched structure degrades to
// a plain description.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (*analysis.Result, error) {
	if err := c.limiter.Admit(); err != nil {
		return nil, err
	}

	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = "description"
	}
	detail := req.Detail
	if detail == "" {
		detail = "medium"
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: invalid image payload: %w", err)
	}

	parts := []*genai.Part{
		{Text: prompt.Analysis(analysisType, detail)},
		imagePart(data),
	}

	c.log.WithFields(logrus.Fields{"operation": "analyze", "type": analysisType}).Debug("dispatching remote call")

	reply, err := c.remote.Call(ctx, parts, nil)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	return analysis.Parse(reply.Text, analysisType), nil
}

// GenerateBatch runs the single-prompt generation path once per prompt,
// strictly in order. Each sub-call is rate-limited on its own; the first
// failure aborts the remaining prompts and is surfaced as-is.
func (c *Client) GenerateBatch(ctx context.Context, req BatchRequest) ([]GeneratedImage, error) {
	images := []GeneratedImage{}
	for i, p := range req.Prompts {
		batch, err := c.Generate(ctx, GenerationRequest{Prompt: p, GenerationOptions: req.Shared})
		if err != nil {
			return nil, fmt.Errorf("batch generation failed at prompt %d: %w", i+1, err)
		}
		images = append(images, batch...)
	}
	return images, nil
}

// ApplyStyleTransfer is defined purely in terms of Modify: it synthesizes
// the style instruction and never preserves the original style.
func (c *Client) ApplyStyleTransfer(ctx context.Context, req StyleTransferRequest) (*GeneratedImage, error) {
	return c.Modify(ctx, ModificationRequest{
		ImageData:     req.ImageData,
		Instructions:  prompt.StyleTransfer(req.Style, req.Intensity),
		PreserveStyle: false,
	})
}

// materialize wraps one remote blob into a GeneratedImage tagged with the
// model identifier, a fresh id, and the generation timestamp.
func (c *Client) materialize(blob gemini.Blob, extra map[string]string) GeneratedImage {
	meta := imgmeta.Inspect(blob.Data)

	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = meta.MIMEType
	}

	metadata := map[string]string{
		"id":          uuid.NewString(),
		"model":       c.remote.Model(),
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range extra {
		metadata[k] = v
	}

	return GeneratedImage{
		Data:     base64.StdEncoding.EncodeToString(blob.Data),
		MIMEType: mimeType,
		Width:    meta.Width,
		Height:   meta.Height,
		Metadata: metadata,
	}
}

// imagePart builds the inline-data part for an image payload.
func imagePart(data []byte) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{
		MIMEType: imgmeta.Inspect(data).MIMEType,
		Data:     data,
	}}
}
