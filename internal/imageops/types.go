package imageops

// GenerationOptions are the generation knobs shared by single and batch
// requests. Width and Height are advisory; the model sizes output from the
// aspect ratio.
type GenerationOptions struct {
	Width          int
	Height         int
	AspectRatio    string
	Style          string
	Quality        string
	NumberOfImages int
	Seed           *int32
}

// GenerationRequest asks for one or more images from a text prompt.
type GenerationRequest struct {
	Prompt string
	GenerationOptions
}

// ModificationRequest asks for an edit of an existing image.
type ModificationRequest struct {
	// ImageData is the base64-encoded source image.
	ImageData     string
	Instructions  string
	PreserveStyle bool
	// Strength is the edit strength in [0, 1]; validated at the gateway.
	Strength float64
}

// AnalysisRequest asks the model to examine an existing image.
type AnalysisRequest struct {
	ImageData    string
	AnalysisType string
	Detail       string
}

// BatchRequest generates one image set per prompt, with the same options
// applied to every prompt.
type BatchRequest struct {
	Prompts []string
	Shared  GenerationOptions
}

// StyleTransferRequest reimagines an image in a named artistic style.
// Intensity is 0-100; zero means unspecified.
type StyleTransferRequest struct {
	ImageData string
	Style     string
	Intensity int
}

// GeneratedImage is one produced image. It is owned by the caller once
// returned; nothing here retains it.
type GeneratedImage struct {
	// Data is the base64-encoded image payload.
	Data     string            `json:"data"`
	MIMEType string            `json:"mimeType"`
	Width    int               `json:"width,omitempty"`
	Height   int               `json:"height,omitempty"`
	Metadata map[string]string `json:"metadata"`
}
