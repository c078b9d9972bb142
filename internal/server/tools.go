package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Enum values shared by the tool schemas and the argument validation.
var (
	aspectRatios     = []string{"1:1", "16:9", "9:16", "4:3", "3:4"}
	generationStyles = []string{"realistic", "artistic", "cartoon", "anime", "sketch", "watercolor"}
	qualityLevels    = []string{"standard", "high", "ultra"}
	analysisTypes    = []string{"description", "objects", "text", "colors", "emotions", "comprehensive"}
	detailLevels     = []string{"low", "medium", "high"}
	transferStyles   = []string{"impressionist", "watercolor", "oil-painting", "sketch", "anime", "cyberpunk", "vintage"}
)

// toolDefinitions returns the static tool catalogue.
func toolDefinitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("generate_image",
			mcp.WithDescription("Generate one or more images from a text prompt using the Gemini model."),
			mcp.WithString("prompt",
				mcp.Required(),
				mcp.Description("Text description of the image to generate"),
			),
			mcp.WithNumber("width",
				mcp.Description("Requested width in pixels (advisory)"),
			),
			mcp.WithNumber("height",
				mcp.Description("Requested height in pixels (advisory)"),
			),
			mcp.WithString("aspectRatio",
				mcp.Description("Aspect ratio of the generated image"),
				mcp.Enum(aspectRatios...),
			),
			mcp.WithString("style",
				mcp.Description("Visual style; 'realistic' is the default and adds no style clause"),
				mcp.Enum(generationStyles...),
			),
			mcp.WithString("quality",
				mcp.Description("Output quality level"),
				mcp.Enum(qualityLevels...),
			),
			mcp.WithNumber("numberOfImages",
				mcp.Description("How many images to generate (default 1)"),
			),
			mcp.WithNumber("seed",
				mcp.Description("Deterministic generation seed"),
			),
		),
		mcp.NewTool("modify_image",
			mcp.WithDescription("Modify an existing image according to natural-language instructions."),
			mcp.WithString("imageData",
				mcp.Required(),
				mcp.Description("Base64-encoded source image"),
			),
			mcp.WithString("instructions",
				mcp.Required(),
				mcp.Description("What to change in the image"),
			),
			mcp.WithBoolean("preserveStyle",
				mcp.Description("Keep the original style of the image (default false)"),
			),
			mcp.WithNumber("strength",
				mcp.Description("Edit strength between 0 and 1"),
			),
		),
		mcp.NewTool("analyze_image",
			mcp.WithDescription("Analyze an image and return a structured result."),
			mcp.WithString("imageData",
				mcp.Required(),
				mcp.Description("Base64-encoded image to analyze"),
			),
			mcp.WithString("analysisType",
				mcp.Description("What to extract from the image (default description)"),
				mcp.Enum(analysisTypes...),
			),
			mcp.WithString("detail",
				mcp.Description("Detail level for descriptions (default medium)"),
				mcp.Enum(detailLevels...),
			),
		),
		mcp.NewTool("batch_generate",
			mcp.WithDescription("Generate images for a list of prompts, applying the same options to each."),
			mcp.WithArray("prompts",
				mcp.Required(),
				mcp.Description("Prompts to generate, in order"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithObject("sharedOptions",
				mcp.Description("Generation options applied identically to every prompt"),
				mcp.Properties(map[string]any{
					"width":          map[string]any{"type": "number"},
					"height":         map[string]any{"type": "number"},
					"aspectRatio":    map[string]any{"type": "string", "enum": aspectRatios},
					"style":          map[string]any{"type": "string", "enum": generationStyles},
					"quality":        map[string]any{"type": "string", "enum": qualityLevels},
					"numberOfImages": map[string]any{"type": "number"},
					"seed":           map[string]any{"type": "number"},
				}),
			),
		),
		mcp.NewTool("style_transfer",
			mcp.WithDescription("Reimagine an existing image in a named artistic style."),
			mcp.WithString("imageData",
				mcp.Required(),
				mcp.Description("Base64-encoded source image"),
			),
			mcp.WithString("style",
				mcp.Required(),
				mcp.Description("Target artistic style"),
				mcp.Enum(transferStyles...),
			),
			mcp.WithNumber("intensity",
				mcp.Description("Style intensity from 0 to 100"),
			),
		),
	}
}
