// Package server implements the MCP (Model Context Protocol) gateway for
// the Gemini image tools.
//
// The protocol mechanics — stdio framing, handshake, tool listing, and
// rejection of calls to unknown tools — are delegated to the mcp-go
// library. What lives here is the gateway logic: the static tool catalogue,
// argument shaping and validation, dispatch into the image operations
// client, and rendering of typed results into response envelopes.
//
// # Available Tools
//
//   - generate_image: text-to-image generation with style, aspect-ratio and
//     quality options
//   - modify_image: instruction-driven editing of an existing image
//   - analyze_image: description, object, text, color, emotion or
//     comprehensive analysis
//   - batch_generate: ordered multi-prompt generation with shared options
//   - style_transfer: reimagine an image in a named artistic style
//
// # Argument Handling
//
// Tool arguments arrive as an untyped map. Each handler shapes the map into
// a typed args struct and validates it explicitly — required fields must be
// present and non-blank, enum fields must hold a declared value, numeric
// ranges are enforced — before the operation runs. Validation failures are
// returned as error-flagged envelopes, not protocol errors.
//
// # Error Handling
//
// Every failure below the gateway (rate limiting, remote dispatch, payload
// decoding) is caught and rendered as an error-flagged response envelope
// carrying the failure message. Nothing in this package terminates the
// process.
package server
