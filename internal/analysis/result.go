package analysis

// DetectedObject is one object the model reported, with its confidence
// normalized to 0-1.
type DetectedObject struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ColorInfo is one dominant color reported by the model. Percentage is 0
// when the model did not state coverage for the color.
type ColorInfo struct {
	Hex        string  `json:"hex"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// EmotionScore is one emotion the model reported, with its confidence
// normalized to 0-1.
type EmotionScore struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// Comprehensive bundles every extraction category into one record.
type Comprehensive struct {
	Description string           `json:"description"`
	Objects     []DetectedObject `json:"objects"`
	Text        []string         `json:"text"`
	Colors      []ColorInfo      `json:"colors"`
	Emotions    []EmotionScore   `json:"emotions"`
	Tags        []string         `json:"tags"`
}

// Result is the typed outcome of an analysis call. At most one field group
// is populated, matching the requested analysis type; comprehensive requests
// populate only Comprehensive.
type Result struct {
	Description   string           `json:"description,omitempty"`
	Objects       []DetectedObject `json:"objects,omitempty"`
	Text          []string         `json:"text,omitempty"`
	Colors        []ColorInfo      `json:"colors,omitempty"`
	Emotions      []EmotionScore   `json:"emotions,omitempty"`
	Comprehensive *Comprehensive   `json:"comprehensive,omitempty"`
}
