// Package mcpquery exposes C9's IDE query layer as MCP tools over stdio
// (§6.2), so an editor or agent process can hover, jump to a definition,
// find references, list symbols, and fetch diagnostics against a live
// host.Host through a single long-running connection. Grounded on
// pkg/mcp/server.go's NewServer/AddTools/ServeStdio wiring, generalized
// from the teacher's fixed catalog.QueryService tool set to this
// package's own query-layer tool set.
package mcpquery

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sysml-tools/sysmlcore/pkg/host"
	"github.com/sysml-tools/sysmlcore/pkg/mcplog"
)

const serverName = "sysmlls"
const serverVersion = "0.1.0-dev"

// Server wires a host.Host's query surface into an MCP stdio server.
type Server struct {
	mcpServer *server.MCPServer
	host      *host.Host
	logger    *mcplog.Logger // may be nil if logging is disabled
}

// NewServer creates a server over h. Pass nil for logger to disable the
// JSONL tool-call audit log.
func NewServer(h *host.Host, logger *mcplog.Logger) *Server {
	s := &Server{host: h, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer(serverName, serverVersion, opts...)
	s.mcpServer.AddTools(
		server.ServerTool{Tool: hoverTool(), Handler: s.handleHover},
		server.ServerTool{Tool: gotoDefinitionTool(), Handler: s.handleGotoDefinition},
		server.ServerTool{Tool: findReferencesTool(), Handler: s.handleFindReferences},
		server.ServerTool{Tool: documentSymbolsTool(), Handler: s.handleDocumentSymbols},
		server.ServerTool{Tool: workspaceSymbolsTool(), Handler: s.handleWorkspaceSymbols},
		server.ServerTool{Tool: diagnosticsTool(), Handler: s.handleDiagnostics},
		server.ServerTool{Tool: completionsTool(), Handler: s.handleCompletions},
		server.ServerTool{Tool: setFileContentTool(), Handler: s.handleSetFileContent},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close shuts down the logger if one is active. Should be deferred after
// NewServer.
func (s *Server) Close() error {
	if s.logger != nil {
		return s.logger.Close()
	}
	return nil
}
