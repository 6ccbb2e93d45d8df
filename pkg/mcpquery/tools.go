package mcpquery

import "github.com/mark3labs/mcp-go/mcp"

// Every tool below takes a `file` string argument identifying the file
// handle as known to the host (the path SetFileContent was called
// with), and most take a 0-based `line`/`column` position (§6.2).

func fileArg() mcp.ToolOption {
	return mcp.WithString("file", mcp.Required(), mcp.Description("file handle, as passed to set_file_content"))
}

func positionArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("line", mcp.Required(), mcp.Description("0-based line number")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("0-based column number")),
	}
}

func hoverTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Return the declaration summary for the symbol or reference at a position."),
		fileArg(),
	}, positionArgs()...)
	return mcp.NewTool("hover", opts...)
}

func gotoDefinitionTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Return the file and span where the symbol or reference at a position is declared."),
		fileArg(),
	}, positionArgs()...)
	return mcp.NewTool("goto_definition", opts...)
}

func findReferencesTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Return every reference site resolving to the symbol at a position."),
		fileArg(),
	}, positionArgs()...)
	return mcp.NewTool("find_references", opts...)
}

func documentSymbolsTool() mcp.Tool {
	return mcp.NewTool("document_symbols",
		mcp.WithDescription("List every declared symbol in a file, in declaration order."),
		fileArg(),
	)
}

func workspaceSymbolsTool() mcp.Tool {
	return mcp.NewTool("workspace_symbols",
		mcp.WithDescription("Search every indexed symbol by a case-insensitive substring of its name."),
		mcp.WithString("query", mcp.Description("substring to match; empty matches everything")),
	)
}

func diagnosticsTool() mcp.Tool {
	return mcp.NewTool("diagnostics",
		mcp.WithDescription("Return syntax and semantic diagnostics for a file."),
		fileArg(),
	)
}

func completionsTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List every name visible at a position, for autocomplete."),
		fileArg(),
	}, positionArgs()...)
	return mcp.NewTool("completions", opts...)
}

func setFileContentTool() mcp.Tool {
	return mcp.NewTool("set_file_content",
		mcp.WithDescription("Replace a file's content in the host, reparsing and reindexing it, and return its diagnostics."),
		fileArg(),
		mcp.WithString("text", mcp.Required(), mcp.Description("full new file content")),
	)
}
