package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"gemini-image-mcp/internal/imageops"
)

// Name and Version identify the server during the protocol handshake.
const (
	Name    = "gemini-image-mcp"
	Version = "0.1.0"
)

// Server exposes the image operations as MCP tools over stdio. The protocol
// mechanics (handshake, framing, tool listing, unknown-tool rejection) are
// handled by the mcp-go library; this type owns the catalogue and the
// argument handling.
type Server struct {
	ops *imageops.Client
	log *logrus.Logger
	mcp *mcpserver.MCPServer
}

// New builds the server and registers the five tools.
func New(ops *imageops.Client, log *logrus.Logger) *Server {
	s := &Server{ops: ops, log: log}

	handlers := map[string]mcpserver.ToolHandlerFunc{
		"generate_image": s.handleGenerateImage,
		"modify_image":   s.handleModifyImage,
		"analyze_image":  s.handleAnalyzeImage,
		"batch_generate": s.handleBatchGenerate,
		"style_transfer": s.handleStyleTransfer,
	}

	m := mcpserver.NewMCPServer(Name, Version, mcpserver.WithToolCapabilities(false))
	for _, tool := range toolDefinitions() {
		m.AddTool(tool, handlers[tool.Name])
	}

	s.mcp = m
	return s
}

// Run serves the MCP protocol on stdin/stdout until the client disconnects.
func (s *Server) Run() error {
	s.log.WithField("server", Name).Info("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// textAndImages renders a response envelope with a leading text part
// followed by one inline image per generated payload.
func textAndImages(text string, images []imageops.GeneratedImage) *mcp.CallToolResult {
	content := []mcp.Content{mcp.TextContent{Type: "text", Text: text}}
	for _, img := range images {
		content = append(content, mcp.ImageContent{
			Type:     "image",
			Data:     img.Data,
			MIMEType: img.MIMEType,
		})
	}
	return &mcp.CallToolResult{Content: content}
}
