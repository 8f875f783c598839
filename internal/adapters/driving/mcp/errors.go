// Package mcp provides an MCP (Model Context Protocol) server adapter for datimex.
// It lets AI assistants extract dates from text and read stored annotations.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")
