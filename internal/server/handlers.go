package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"gemini-image-mcp/internal/imageops"
)

// decodeArgs shapes the untyped argument map into a typed args struct.
// Unknown fields are ignored; type mismatches surface as a validation error
// to the caller.
func decodeArgs(args any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// requireText fails when a required text field is missing or blank.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// checkEnum fails when a set optional field is outside its declared values.
// Empty values pass; required enum fields go through requireText first.
func checkEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", field, strings.Join(allowed, ", "))
}

// firstError returns the first non-nil validation error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// errorResult converts a lower-layer failure into an error-flagged envelope.
// Nothing below the gateway is allowed to cross the protocol boundary as a
// raw error.
func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	s.log.WithField("tool", tool).Warnf("tool call failed: %v", err)
	return mcp.NewToolResultError(err.Error())
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === generate_image ===

type generateImageArgs struct {
	Prompt         string `json:"prompt"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	AspectRatio    string `json:"aspectRatio"`
	Style          string `json:"style"`
	Quality        string `json:"quality"`
	NumberOfImages int    `json:"numberOfImages"`
	Seed           *int32 `json:"seed"`
}

func (a *generateImageArgs) validate() error {
	return firstError(
		requireText("prompt", a.Prompt),
		checkEnum("aspectRatio", a.AspectRatio, aspectRatios),
		checkEnum("style", a.Style, generationStyles),
		checkEnum("quality", a.Quality, qualityLevels),
	)
}

func (a *generateImageArgs) options() imageops.GenerationOptions {
	return imageops.GenerationOptions{
		Width:          a.Width,
		Height:         a.Height,
		AspectRatio:    a.AspectRatio,
		Style:          a.Style,
		Quality:        a.Quality,
		NumberOfImages: a.NumberOfImages,
		Seed:           a.Seed,
	}
}

func (s *Server) handleGenerateImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var a generateImageArgs
	if err := decodeArgs(req.Params.Arguments, &a); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if err := a.validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	images, err := s.ops.Generate(ctx, imageops.GenerationRequest{
		Prompt:            a.Prompt,
		GenerationOptions: a.options(),
	})
	if err != nil {
		return s.errorResult("generate_image", err), nil
	}

	text := fmt.Sprintf("Generated %d image(s).\n%s", len(images), mustMarshalJSON(imageMetadata(images)))
	return textAndImages(text, images), nil
}

// === modify_image ===

type modifyImageArgs struct {
	ImageData     string  `json:"imageData"`
	Instructions  string  `json:"instructions"`
	PreserveStyle bool    `json:"preserveStyle"`
	Strength      float64 `json:"strength"`
}

func (a *modifyImageArgs) validate() error {
	if err := firstError(
		requireText("imageData", a.ImageData),
		requireText("instructions", a.Instructions),
	); err != nil {
		return err
	}
	if a.Strength < 0 || a.Strength > 1 {
		return fmt.Errorf("strength must be between 0 and 1")
	}
	return nil
}

func (s *Server) handleModifyImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var a modifyImageArgs
	if err := decodeArgs(req.Params.Arguments, &a); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if err := a.validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	img, err := s.ops.Modify(ctx, imageops.ModificationRequest{
		ImageData:     a.ImageData,
		Instructions:  a.Instructions,
		PreserveStyle: a.PreserveStyle,
		Strength:      a.Strength,
	})
	if err != nil {
		return s.errorResult("modify_image", err), nil
	}

	text := "Modified image.\n" + mustMarshalJSON(img.Metadata)
	return textAndImages(text, []imageops.GeneratedImage{*img}), nil
}

// === analyze_image ===

type analyzeImageArgs struct {
	ImageData    string `json:"imageData"`
	AnalysisType string `json:"analysisType"`
	Detail       string `json:"detail"`
}

func (a *analyzeImageArgs) validate() error {
	return firstError(
		requireText("imageData", a.ImageData),
		checkEnum("analysisType", a.AnalysisType, analysisTypes),
		checkEnum("detail", a.Detail, detailLevels),
	)
}

func (s *Server) handleAnalyzeImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var a analyzeImageArgs
	if err := decodeArgs(req.Params.Arguments, &a); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if err := a.validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.ops.Analyze(ctx, imageops.AnalysisRequest{
		ImageData:    a.ImageData,
		AnalysisType: a.AnalysisType,
		Detail:       a.Detail,
	})
	if err != nil {
		return s.errorResult("analyze_image", err), nil
	}

	return mcp.NewToolResultText(mustMarshalJSON(result)), nil
}

// === batch_generate ===

type batchGenerateArgs struct {
	Prompts       []string `json:"prompts"`
	SharedOptions struct {
		Width          int    `json:"width"`
		Height         int    `json:"height"`
		AspectRatio    string `json:"aspectRatio"`
		Style          string `json:"style"`
		Quality        string `json:"quality"`
		NumberOfImages int    `json:"numberOfImages"`
		Seed           *int32 `json:"seed"`
	} `json:"sharedOptions"`
}

func (a *batchGenerateArgs) validate() error {
	if a.Prompts == nil {
		return fmt.Errorf("prompts is required")
	}
	for i, p := range a.Prompts {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("prompts[%d] is empty", i)
		}
	}
	return firstError(
		checkEnum("sharedOptions.aspectRatio", a.SharedOptions.AspectRatio, aspectRatios),
		checkEnum("sharedOptions.style", a.SharedOptions.Style, generationStyles),
		checkEnum("sharedOptions.quality", a.SharedOptions.Quality, qualityLevels),
	)
}

func (s *Server) handleBatchGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var a batchGenerateArgs
	if err := decodeArgs(req.Params.Arguments, &a); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if err := a.validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	images, err := s.ops.GenerateBatch(ctx, imageops.BatchRequest{
		Prompts: a.Prompts,
		Shared: imageops.GenerationOptions{
			Width:          a.SharedOptions.Width,
			Height:         a.SharedOptions.Height,
			AspectRatio:    a.SharedOptions.AspectRatio,
			Style:          a.SharedOptions.Style,
			Quality:        a.SharedOptions.Quality,
			NumberOfImages: a.SharedOptions.NumberOfImages,
			Seed:           a.SharedOptions.Seed,
		},
	})
	if err != nil {
		return s.errorResult("batch_generate", err), nil
	}

	text := fmt.Sprintf("Generated %d image(s) for %d prompt(s).\n%s",
		len(images), len(a.Prompts), mustMarshalJSON(imageMetadata(images)))
	return textAndImages(text, images), nil
}

// === style_transfer ===

type styleTransferArgs struct {
	ImageData string `json:"imageData"`
	Style     string `json:"style"`
	Intensity int    `json:"intensity"`
}

func (a *styleTransferArgs) validate() error {
	if err := firstError(
		requireText("imageData", a.ImageData),
		requireText("style", a.Style),
		checkEnum("style", a.Style, transferStyles),
	); err != nil {
		return err
	}
	if a.Intensity < 0 || a.Intensity > 100 {
		return fmt.Errorf("intensity must be between 0 and 100")
	}
	return nil
}

func (s *Server) handleStyleTransfer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var a styleTransferArgs
	if err := decodeArgs(req.Params.Arguments, &a); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if err := a.validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	img, err := s.ops.ApplyStyleTransfer(ctx, imageops.StyleTransferRequest{
		ImageData: a.ImageData,
		Style:     a.Style,
		Intensity: a.Intensity,
	})
	if err != nil {
		return s.errorResult("style_transfer", err), nil
	}

	text := fmt.Sprintf("Applied %s style.\n%s", a.Style, mustMarshalJSON(img.Metadata))
	return textAndImages(text, []imageops.GeneratedImage{*img}), nil
}

// imageMetadata strips the payloads for the textual part of the envelope.
func imageMetadata(images []imageops.GeneratedImage) []map[string]string {
	out := make([]map[string]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.Metadata)
	}
	return out
}
