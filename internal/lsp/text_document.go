// Package lsp implements LSP protocol handlers.
package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alloyconf/alloy-hover-lsp/internal/server"
)

// DidOpen handles the textDocument/didOpen notification.
// This is sent when a document is opened in the editor.
func DidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	srv, ok := serverInstance.(*server.Server)
	if !ok || srv == nil {
		log.Println("Warning: server instance not available in DidOpen")
		return nil
	}

	uri := params.TextDocument.URI
	text := params.TextDocument.Text
	languageID := params.TextDocument.LanguageID
	version := int(params.TextDocument.Version)

	log.Printf("Document opened: %s (version %d, language %s, %d bytes)\n",
		uri, version, languageID, len(text))

	doc := &server.Document{
		URI:        uri,
		Text:       text,
		Version:    version,
		LanguageID: languageID,
	}
	srv.Documents().Set(uri, doc)

	return nil
}

// DidChange handles the textDocument/didChange notification.
// The server advertises full-document sync, so every change event carries
// the complete text; when a batch arrives, only the last event takes
// effect and the earlier ones are discarded.
func DidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	srv, ok := serverInstance.(*server.Server)
	if !ok || srv == nil {
		log.Println("Warning: server instance not available in DidChange")
		return nil
	}

	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	newText := ""
	applied := false

	for i, changeInterface := range params.ContentChanges {
		switch change := changeInterface.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			newText = change.Text
			applied = true
		case protocol.TextDocumentContentChangeEvent:
			// A ranged event still carries the full text under full
			// sync; the range itself is ignored.
			newText = change.Text
			applied = true
		default:
			log.Printf("Warning: Invalid content change type at index %d for %s\n", i, uri)
		}
	}

	if !applied {
		log.Printf("Document change without content: %s (version %d)\n", uri, version)
		return nil
	}

	// A change for a URI that was never opened stores the document; the
	// language ID is carried over when a previous version exists.
	languageID := ""
	if doc, exists := srv.Documents().Get(uri); exists {
		languageID = doc.LanguageID
	}

	log.Printf("Document changed: %s (version %d, %d change(s), %d bytes)\n",
		uri, version, len(params.ContentChanges), len(newText))

	srv.Documents().Set(uri, &server.Document{
		URI:        uri,
		Text:       newText,
		Version:    version,
		LanguageID: languageID,
	})

	return nil
}

// DidClose handles the textDocument/didClose notification.
// This is sent when a document is closed in the editor.
func DidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	srv, ok := serverInstance.(*server.Server)
	if !ok || srv == nil {
		log.Println("Warning: server instance not available in DidClose")
		return nil
	}

	uri := params.TextDocument.URI

	srv.Documents().Delete(uri)

	log.Printf("Document closed: %s\n", uri)

	return nil
}
