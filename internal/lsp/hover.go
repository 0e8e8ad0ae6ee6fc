// Package lsp implements LSP protocol handlers.
package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alloyconf/alloy-hover-lsp/internal/analysis"
	"github.com/alloyconf/alloy-hover-lsp/internal/server"
)

// Hover handles the textDocument/hover request.
// It looks up the word under the cursor in the hover dictionary and
// returns its documentation, or nil when there is nothing to show.
// A missing document, an out-of-range position, an empty word, and a
// dictionary miss all yield a nil result, never an error.
func Hover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	srv, ok := serverInstance.(*server.Server)
	if !ok || srv == nil {
		log.Println("Warning: server instance not available in Hover")
		return nil, nil
	}

	uri := params.TextDocument.URI
	position := params.Position

	log.Printf("Hover request at %s line %d, character %d\n",
		uri, position.Line, position.Character)

	doc, exists := srv.Documents().Get(uri)
	if !exists {
		log.Printf("Document not found for hover: %s\n", uri)
		return nil, nil
	}

	result := analysis.ResolveHover(doc.Text, position, srv.Dictionary())
	if result == nil {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: result.Value,
		},
		Range: &result.Range,
	}, nil
}
