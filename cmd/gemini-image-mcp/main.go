package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gemini-image-mcp/internal/config"
	"gemini-image-mcp/internal/gemini"
	"gemini-image-mcp/internal/imageops"
	"gemini-image-mcp/internal/ratelimit"
	"gemini-image-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("gemini-image-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("gemini-image-mcp - MCP server for Gemini image generation and analysis")
			fmt.Println()
			fmt.Println("Usage: gemini-image-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  GEMINI_API_KEY           API credential (required)")
			fmt.Println("  GEMINI_MODEL             Model identifier (default gemini-2.0-flash-exp)")
			fmt.Println("  SAFETY_LEVEL             none|low|medium|high (default medium)")
			fmt.Println("  RATE_LIMIT_PER_MINUTE    Max remote calls per minute (default 10)")
			fmt.Println("  LOG_LEVEL=debug          Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logging goes to stderr; stdout carries the MCP protocol.
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(logrus.DebugLevel)
	}

	// A .env file is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()
	remote, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.SafetyLevel)
	if err != nil {
		log.Fatalf("failed to initialize gemini client: %v", err)
	}

	ops := imageops.NewClient(remote, ratelimit.New(cfg.RateLimitPerMinute), log)

	srv := server.New(ops, log)
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
