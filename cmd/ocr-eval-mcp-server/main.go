package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/server"
)

func main() {
	// stdout carries the protocol, so logs default to a file
	log, err := logger.NewLogger(logger.LogConfig{DefaultOutput: "file"})
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}

	log.Info("Starting ocr-eval MCP server")

	srv := server.CreateServer(cfg, log)
	if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal("Server failed: %v", err)
	}
}
