// Package imgmeta inspects generated image payloads.
package imgmeta

import (
	"bytes"
	"net/http"

	"github.com/disintegration/imaging"
)

// Meta describes a raw image payload.
type Meta struct {
	Width    int
	Height   int
	MIMEType string
}

// Inspect sniffs the MIME type and decodes the payload for its dimensions.
// Payloads that fail to decode keep zero dimensions; the data still came
// from the model and is passed along regardless.
func Inspect(data []byte) Meta {
	m := Meta{MIMEType: http.DetectContentType(data)}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return m
	}

	bounds := img.Bounds()
	m.Width = bounds.Dx()
	m.Height = bounds.Dy()
	return m
}
