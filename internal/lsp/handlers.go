// Package lsp implements LSP protocol handlers.
package lsp

// This package contains all LSP request and notification handlers:
// - Initialize / Initialized
// - Shutdown
// - $/setTrace
// - textDocument/didOpen, didChange, didClose
// - textDocument/hover
