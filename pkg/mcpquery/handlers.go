package mcpquery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

func argString(req mcp.CallToolRequest, key string) (string, error) {
	v, ok := req.GetArguments()[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

func argPosition(req mcp.CallToolRequest) (cst.Position, error) {
	args := req.GetArguments()
	line, err := numberArg(args, "line")
	if err != nil {
		return cst.Position{}, err
	}
	col, err := numberArg(args, "column")
	if err != nil {
		return cst.Position{}, err
	}
	return cst.Position{Line: line, Column: col}, nil
}

func numberArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %s", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleHover(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos, err := argPosition(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, ok := s.host.Analysis().Queries.Hover(symbol.FileHandle(file), pos)
	if !ok {
		return mcp.NewToolResultText("null"), nil
	}
	return jsonResult(result)
}

func (s *Server) handleGotoDefinition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos, err := argPosition(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defFile, span, ok := s.host.Analysis().Queries.GotoDefinition(symbol.FileHandle(file), pos)
	if !ok {
		return mcp.NewToolResultText("null"), nil
	}
	return jsonResult(struct {
		File string   `json:"file"`
		Span cst.Span `json:"span"`
	}{File: string(defFile), Span: span})
}

func (s *Server) handleFindReferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos, err := argPosition(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	refs := s.host.Analysis().Queries.FindReferences(symbol.FileHandle(file), pos)
	return jsonResult(refs)
}

func (s *Server) handleDocumentSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	syms := s.host.Analysis().Queries.DocumentSymbols(symbol.FileHandle(file))
	return jsonResult(syms)
}

func (s *Server) handleWorkspaceSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := argString(req, "query")
	syms := s.host.Analysis().Queries.WorkspaceSymbols(query)
	return jsonResult(syms)
}

func (s *Server) handleDiagnostics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	diags := s.host.Analysis().Queries.Diagnostics(symbol.FileHandle(file))
	return jsonResult(diags)
}

func (s *Server) handleCompletions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos, err := argPosition(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items := s.host.Analysis().Queries.Completions(symbol.FileHandle(file), pos)
	return jsonResult(items)
}

func (s *Server) handleSetFileContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := argString(req, "file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := argString(req, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	diags := s.host.SetFileContent(file, text)
	return jsonResult(diags)
}
