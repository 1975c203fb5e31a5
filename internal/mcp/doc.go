// Package mcp exposes the analyzer as a Model Context Protocol (MCP) server
// using the mcp-go library (github.com/mark3labs/mcp-go).
//
// # Tools
//
//   - analyze_source: analyze pasted source text
//   - analyze_directory: analyze a directory on the machine running the server
//   - analyze_repository: clone and analyze a git repository
//
// Every tool accepts an optional "format" argument (json, yaml, markdown or
// text) and returns the report as a single text content item. Fetch and
// validation failures are returned as tool errors rather than protocol
// errors, so the calling assistant can read the message.
//
// # Usage
//
// The server is normally started as a subprocess by an AI assistant:
//
//	mcpscan mcp
//
// It reads JSON-RPC requests from stdin and writes responses to stdout until
// stdin is closed. Logs go to the log file, never to stdout.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
