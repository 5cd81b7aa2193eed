package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/tools"
)

func CreateServer(cfg config.Config, log logger.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "ocr-eval", Version: "v0.1.0"}, nil)

	mcp.AddTool(server, tools.EvaluateDocumentTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.EvaluateDocumentQuery) (*mcp.CallToolResult, *tools.DocumentOutcome, error) {
		return tools.EvaluateDocumentToolHandler(ctx, req, query, cfg, log)
	})

	mcp.AddTool(server, tools.EvaluateBatchTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.EvaluateBatchQuery) (*mcp.CallToolResult, *tools.EvaluateBatchResponse, error) {
		return tools.EvaluateBatchToolHandler(ctx, req, query, cfg, log)
	})

	return server
}
