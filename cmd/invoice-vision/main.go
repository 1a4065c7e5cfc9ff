package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/apdesk/invoice-vision/internal/extraction"
	"github.com/apdesk/invoice-vision/internal/invoice"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// Credentials may live in a .env file during development; absence of the
	// file itself is fine.
	_ = godotenv.Load()

	fs := ff.NewFlagSet("invoice-vision")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		backendType    = fs.StringLong("backend", "anthropic", "Extraction backend: 'anthropic' or 'bedrock'")
		anthropicKey   = fs.StringLong("anthropic-key", "", "Anthropic API key (or set ANTHROPIC_API_KEY env var)")
		anthropicModel = fs.StringLong("anthropic-model", "claude-3-5-sonnet-20240620", "Anthropic model name")
		awsRegion      = fs.StringLong("aws-region", "us-east-1", "AWS region for the Bedrock backend")
		bedrockModel   = fs.StringLong("bedrock-model", "anthropic.claude-3-5-sonnet-20240620-v1:0", "Bedrock model ID")
		maxTokens      = fs.IntLong("max-tokens", extraction.DefaultMaxTokens, "Generation budget in output tokens")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("INVOICE_VISION"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize the extraction backend. Missing credentials are fatal here,
	// at startup, never per call.
	var backend extraction.Backend
	var err error
	switch *backendType {
	case "anthropic":
		apiKey := *anthropicKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Anthropic API key is required. Set --anthropic-key flag or ANTHROPIC_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Anthropic backend...", "model", *anthropicModel)
		backend, err = extraction.NewAnthropic(extraction.AnthropicConfig{
			APIKey: apiKey,
			Model:  *anthropicModel,
		})
		if err != nil {
			slog.Error("Failed to initialize Anthropic backend", "error", err)
			os.Exit(1)
		}
	case "bedrock":
		slog.Info("Initializing Bedrock backend...", "region", *awsRegion, "model", *bedrockModel)
		backend, err = extraction.NewBedrock(context.Background(), extraction.BedrockConfig{
			Region:  *awsRegion,
			ModelID: *bedrockModel,
		})
		if err != nil {
			slog.Error("Failed to initialize Bedrock backend", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid backend type", "type", *backendType, "valid", "anthropic or bedrock")
		os.Exit(1)
	}
	defer backend.Close()

	client := extraction.NewClient(backend, *maxTokens, slog.Default())
	service := invoice.NewService(client)

	basicAuth := invoice.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := invoice.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
