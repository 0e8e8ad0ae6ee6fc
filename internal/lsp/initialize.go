// Package lsp implements LSP protocol handlers.
package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alloyconf/alloy-hover-lsp/internal/server"
)

const (
	serverName    = "alloy-hover-lsp"
	serverVersion = "0.1.0"
)

var (
	// serverInstance holds the global server instance
	// This is set by SetServer and accessed by handlers
	serverInstance interface{}
)

// SetServer sets the global server instance for handlers to access.
func SetServer(srv interface{}) {
	serverInstance = srv
}

// Initialize handles the LSP initialize request.
// This is the first request sent by the client and establishes the server
// capabilities: full-document synchronization with open/close tracking,
// and hover. Nothing else is advertised.
func Initialize(context *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	if srv, ok := serverInstance.(*server.Server); ok && srv != nil {
		srv.SetClientCapabilities(&params.Capabilities)
	}

	changeKind := protocol.TextDocumentSyncKindFull
	trueVal := true

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &changeKind,
		},
		HoverProvider: &trueVal,
	}

	version := serverVersion

	result := protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}

	return result, nil
}

// Initialized handles the initialized notification from the client.
// This is sent after the initialize response, signaling that the client is ready.
func Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown handles the shutdown request.
// The dictionary needs no teardown; open documents are dropped and the
// server is flagged so late notifications find nothing to act on.
func Shutdown(context *glsp.Context) error {
	srv, ok := serverInstance.(*server.Server)
	if !ok || srv == nil {
		return nil
	}

	srv.SetShuttingDown()
	srv.Documents().Clear()

	return nil
}

// SetTrace handles the $/setTrace notification, recording the trace level
// requested by the client.
func SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	srv, ok := serverInstance.(*server.Server)
	if !ok || srv == nil {
		return nil
	}

	srv.UpdateConfig(func(c *server.Config) {
		c.Trace = string(params.Value)
	})

	return nil
}
