package mcpquery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/host"
	"github.com/sysml-tools/sysmlcore/pkg/mcplog"
)

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func TestArgStringReturnsValueOrError(t *testing.T) {
	s, err := argString(callReq(map[string]any{"file": "a.sysml"}), "file")
	require.NoError(t, err)
	assert.Equal(t, "a.sysml", s)

	_, err = argString(callReq(map[string]any{}), "file")
	assert.Error(t, err)

	_, err = argString(callReq(map[string]any{"file": 5}), "file")
	assert.Error(t, err)
}

func TestArgPositionParsesNumericLineAndColumn(t *testing.T) {
	pos, err := argPosition(callReq(map[string]any{"line": float64(3), "column": float64(7)}))
	require.NoError(t, err)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 7, pos.Column)
}

func TestArgPositionMissingColumnErrors(t *testing.T) {
	_, err := argPosition(callReq(map[string]any{"line": float64(3)}))
	assert.Error(t, err)
}

func TestHandleHoverReturnsDeclarationForKnownSymbol(t *testing.T) {
	h := host.New(0, nil)
	h.SetFileContent("a.sysml", `package P { part def Vehicle; }`)

	s := &Server{host: h}
	res, err := s.handleHover(context.Background(), callReq(map[string]any{
		"file": "a.sysml", "line": float64(0), "column": float64(22),
	}))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.IsError)
}

func TestHandleDiagnosticsSurfacesUnresolvedReference(t *testing.T) {
	h := host.New(0, nil)
	h.SetFileContent("a.sysml", `package P { part def Vehicle :> Nonexistent; }`)

	s := &Server{host: h}
	res, err := s.handleDiagnostics(context.Background(), callReq(map[string]any{"file": "a.sysml"}))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.IsError)
}

func TestHandleSetFileContentUpdatesHostAndReturnsDiagnostics(t *testing.T) {
	h := host.New(0, nil)
	s := &Server{host: h}

	res, err := s.handleSetFileContent(context.Background(), callReq(map[string]any{
		"file": "a.sysml", "text": "package P { part def Vehicle; }",
	}))
	require.NoError(t, err)
	require.NotNil(t, res)

	snap := h.Analysis()
	_, ok := snap.Index.ByQualifiedName("P::Vehicle")
	assert.True(t, ok)
}

func TestHandleSetFileContentMissingArgumentIsToolError(t *testing.T) {
	h := host.New(0, nil)
	s := &Server{host: h}

	res, err := s.handleSetFileContent(context.Background(), callReq(map[string]any{"file": "a.sysml"}))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestLoggingMiddlewareWritesOneEntryPerCall(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "calls.jsonl")
	logger, err := mcplog.NewLogger(logPath)
	require.NoError(t, err)

	h := host.New(0, nil)
	s := &Server{host: h, logger: logger}
	wrapped := s.loggingMiddleware()(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	_, err = wrapped(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "hover", Arguments: map[string]any{"file": "a.sysml"}},
	})
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tool":"hover"`)
}
