// Package mcp exposes invoice extraction and the transaction ledger to MCP
// clients over stdio or streamable HTTP.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extractor is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")
