// Package prompt synthesizes the natural-language instructions sent to the
// generative model. Every builder is a pure function of its arguments.
package prompt

import (
	"fmt"
	"strings"
)

// StyleRealistic is the default generation style; it never contributes a
// style clause, which keeps prompts for unstyled requests untouched.
const StyleRealistic = "realistic"

// Generation builds the instruction for a text-to-image request.
//
// Clauses are appended in fixed order: style, aspect ratio, quality. A
// "standard" or empty quality adds nothing.
func Generation(base, style, aspectRatio, quality string) string {
	var b strings.Builder
	b.WriteString(base)

	if style != "" && style != StyleRealistic {
		fmt.Fprintf(&b, " in %s style", style)
	}
	if aspectRatio != "" {
		fmt.Fprintf(&b, " with %s aspect ratio", aspectRatio)
	}
	switch quality {
	case "high":
		b.WriteString(", high quality, detailed")
	case "ultra":
		b.WriteString(", ultra high quality, extremely detailed, masterpiece")
	}

	return b.String()
}

// Analysis builds the instruction for an image-analysis request. Each
// analysis type maps to one canned sentence; the description sentence (also
// used for unrecognized types) is parameterized by the detail level.
func Analysis(analysisType, detail string) string {
	switch analysisType {
	case "objects":
		return "List all objects visible in this image. For each object, give its name followed by a confidence percentage, one per line, in the form \"name: NN%\"."
	case "text":
		return "Extract all text visible in this image. Return each line of text on its own line, exactly as written."
	case "colors":
		return "Identify the dominant colors in this image. List each color as a hex code (#RRGGBB) with the approximate percentage of the image it covers."
	case "emotions":
		return "Describe the emotions conveyed by this image. For each emotion present, give a confidence percentage, such as \"joy: 80%\"."
	case "comprehensive":
		return "Analyze this image comprehensively. Describe the scene, then list objects with confidence percentages (\"name: NN%\"), any visible text, dominant colors as hex codes, emotions with confidence percentages, and finish with a line of the form \"tags: tag1, tag2, ...\"."
	default:
		return fmt.Sprintf("Describe this image with %s detail.", detail)
	}
}

// Modification builds the instruction for an image-editing request.
func Modification(instructions string, preserveStyle bool) string {
	if preserveStyle {
		return instructions + " Preserve the original style of the image."
	}
	return instructions
}

// StyleTransfer builds the editing instruction that reimagines an image in
// the target artistic style. Intensity outside (0, 100] is omitted.
func StyleTransfer(style string, intensity int) string {
	instruction := fmt.Sprintf("Apply %s style to this image.", style)
	if intensity > 0 && intensity <= 100 {
		instruction += fmt.Sprintf(" Apply the style at %d%% intensity.", intensity)
	}
	return Modification(instruction, false)
}
