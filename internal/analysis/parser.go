// Package analysis turns the model's free-text answers into typed results.
//
// The remote model replies in prose, not in a machine-readable format, so
// every extractor here is a best-effort pattern scan. Extraction that finds
// nothing yields empty collections rather than an error; analysis never
// fails because the text did not match.
package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Emotions is the fixed vocabulary the emotion extractor searches for.
var Emotions = []string{"joy", "sadness", "anger", "fear", "surprise", "disgust", "neutral"}

var (
	objectLineRe = regexp.MustCompile(`^\s*(.+?):\s*(\d{1,3})%`)
	hexColorRe   = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)
	percentRe    = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)%`)
	tagsLineRe   = regexp.MustCompile(`(?i)^\s*tags:\s*(.+)$`)
)

// colorLookahead bounds how far past a hex code the percentage scan reaches.
const colorLookahead = 24

// Parse extracts a typed Result from raw model output.
//
// Unrecognized analysis types degrade to a description result carrying the
// raw text, so callers always receive something usable.
func Parse(raw, analysisType string) *Result {
	switch analysisType {
	case "objects":
		return &Result{Objects: extractObjects(raw)}
	case "text":
		return &Result{Text: extractText(raw)}
	case "colors":
		return &Result{Colors: extractColors(raw)}
	case "emotions":
		return &Result{Emotions: extractEmotions(raw)}
	case "comprehensive":
		return &Result{Comprehensive: &Comprehensive{
			Description: raw,
			Objects:     extractObjects(raw),
			Text:        extractText(raw),
			Colors:      extractColors(raw),
			Emotions:    extractEmotions(raw),
			Tags:        extractTags(raw),
		}}
	default:
		return &Result{Description: raw}
	}
}

// extractObjects scans line by line for "name: NN%" entries. Lines that do
// not match are skipped.
func extractObjects(raw string) []DetectedObject {
	objects := []DetectedObject{}
	for _, line := range strings.Split(raw, "\n") {
		m := objectLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pct, err := strconv.Atoi(m[2])
		if err != nil || pct > 100 {
			continue
		}
		objects = append(objects, DetectedObject{
			Name:       strings.TrimSpace(m[1]),
			Confidence: float64(pct) / 100,
		})
	}
	return objects
}

// extractText returns the non-blank lines of the response verbatim.
func extractText(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// extractColors finds #RRGGBB codes anywhere in the text. A coverage
// percentage is taken from a short lookahead after the code when the model
// stated one; the color name is not recoverable from a bare hex code.
func extractColors(raw string) []ColorInfo {
	colors := []ColorInfo{}
	for _, loc := range hexColorRe.FindAllStringIndex(raw, -1) {
		code := raw[loc[0]:loc[1]]
		c, err := colorful.Hex(strings.ToLower(code))
		if err != nil {
			continue
		}

		pct := 0.0
		end := loc[1] + colorLookahead
		if end > len(raw) {
			end = len(raw)
		}
		if m := percentRe.FindStringSubmatch(raw[loc[1]:end]); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v <= 100 {
				pct = v
			}
		}

		colors = append(colors, ColorInfo{
			Hex:        strings.ToUpper(c.Hex()),
			Name:       "Unknown",
			Percentage: pct,
		})
	}
	return colors
}

// extractEmotions searches for each vocabulary word followed within a short
// span by a percentage. Emotions the text never mentions are absent.
func extractEmotions(raw string) []EmotionScore {
	scores := []EmotionScore{}
	for _, emotion := range Emotions {
		re := regexp.MustCompile(`(?is)\b` + emotion + `\b.{0,20}?(\d{1,3})%`)
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		pct, err := strconv.Atoi(m[1])
		if err != nil || pct > 100 {
			continue
		}
		scores = append(scores, EmotionScore{
			Emotion:    emotion,
			Confidence: float64(pct) / 100,
		})
	}
	return scores
}

// extractTags reads a "tags: a, b, c" line if the response carries one.
func extractTags(raw string) []string {
	tags := []string{}
	for _, line := range strings.Split(raw, "\n") {
		m := tagsLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, tag := range strings.Split(m[1], ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}
	return tags
}
