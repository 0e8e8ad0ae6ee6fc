//go:build integration
// +build integration

package integration

import (
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alloyconf/alloy-hover-lsp/internal/dictionary"
	"github.com/alloyconf/alloy-hover-lsp/internal/lsp"
	"github.com/alloyconf/alloy-hover-lsp/internal/server"
)

// setupTestServer creates a new server instance for integration testing
func setupTestServer() *server.Server {
	srv := server.New(dictionary.FromMap(map[string]string{
		"prometheus.scrape":       "**prometheus.scrape** — scrapes Prometheus metrics from a set of targets.",
		"prometheus.remote_write": "**prometheus.remote_write** — delivers metrics to a remote_write endpoint.",
		"discovery.kubernetes":    "**discovery.kubernetes** — discovers scrape targets from the Kubernetes API.",
		"loki.write":              "**loki.write** — delivers log entries to a Loki endpoint over HTTP.",
		"targets":                 "`targets` — list of target label sets to operate on.",
		"forward_to":              "`forward_to` — list of receivers the component sends its output to.",
	}))
	lsp.SetServer(srv)
	return srv
}

const testPipelineConfig = `prometheus.scrape "default" {
  targets    = discovery.kubernetes.pods.targets
  forward_to = [prometheus.remote_write.default.receiver]
}`

func openDocument(t *testing.T, ctx *glsp.Context, uri, text string) {
	t.Helper()

	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "alloy",
			Version:    1,
			Text:       text,
		},
	}

	if err := lsp.DidOpen(ctx, params); err != nil {
		t.Fatalf("DidOpen failed: %v", err)
	}
}

func requestHover(t *testing.T, ctx *glsp.Context, uri string, line, character protocol.UInteger) *protocol.Hover {
	t.Helper()

	params := &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{
				URI: uri,
			},
			Position: protocol.Position{
				Line:      line,
				Character: character,
			},
		},
	}

	hover, err := lsp.Hover(ctx, params)
	if err != nil {
		t.Fatalf("Hover failed: %v", err)
	}

	return hover
}

// TestHoverWorkflow_ComponentName tests hover on a dotted component name
func TestHoverWorkflow_ComponentName(t *testing.T) {
	setupTestServer()
	ctx := &glsp.Context{}

	uri := "file:///test/pipeline.alloy"
	openDocument(t, ctx, uri, testPipelineConfig)

	// Hover in the middle of "prometheus.scrape" on the first line
	hover := requestHover(t, ctx, uri, 0, 5)
	if hover == nil {
		t.Fatal("Expected hover result, got nil")
	}

	content := hover.Contents.(protocol.MarkupContent)
	if content.Kind != protocol.MarkupKindMarkdown {
		t.Errorf("Expected Markdown content, got %v", content.Kind)
	}

	if !strings.Contains(content.Value, "prometheus.scrape") {
		t.Errorf("Expected hover to describe prometheus.scrape, got: %s", content.Value)
	}

	// The range covers the whole dotted name
	if hover.Range == nil {
		t.Fatal("Expected hover range, got nil")
	}
	if hover.Range.Start.Character != 0 || hover.Range.End.Character != 17 {
		t.Errorf("Range = [%d, %d), want [0, 17)",
			hover.Range.Start.Character, hover.Range.End.Character)
	}

	t.Logf("Hover content: %s", content.Value)
}

// TestHoverWorkflow_Attribute tests hover on a block attribute name
func TestHoverWorkflow_Attribute(t *testing.T) {
	setupTestServer()
	ctx := &glsp.Context{}

	uri := "file:///test/pipeline.alloy"
	openDocument(t, ctx, uri, testPipelineConfig)

	// Hover on "targets" on the second line
	hover := requestHover(t, ctx, uri, 1, 4)
	if hover == nil {
		t.Fatal("Expected hover result, got nil")
	}

	content := hover.Contents.(protocol.MarkupContent)
	if !strings.Contains(content.Value, "targets") {
		t.Errorf("Expected hover to describe targets, got: %s", content.Value)
	}
}

// TestHoverWorkflow_UndocumentedWord tests that hover resolves to nothing
// for words absent from the dictionary
func TestHoverWorkflow_UndocumentedWord(t *testing.T) {
	setupTestServer()
	ctx := &glsp.Context{}

	uri := "file:///test/pipeline.alloy"
	openDocument(t, ctx, uri, testPipelineConfig)

	// The quoted block label "default" carries no documentation
	hover := requestHover(t, ctx, uri, 0, 21)
	if hover != nil {
		t.Errorf("Expected nil hover for an undocumented word, got: %+v", hover)
	}
}

// TestHoverWorkflow_PositionPastLineEnd tests the clamp behavior for
// columns beyond the end of the line
func TestHoverWorkflow_PositionPastLineEnd(t *testing.T) {
	setupTestServer()
	ctx := &glsp.Context{}

	uri := "file:///test/short.alloy"
	openDocument(t, ctx, uri, "forward_to")

	// Far past the line end; the word ending the line still resolves
	hover := requestHover(t, ctx, uri, 0, 100)
	if hover == nil {
		t.Fatal("Expected hover result for a column past the line end")
	}

	content := hover.Contents.(protocol.MarkupContent)
	if !strings.Contains(content.Value, "forward_to") {
		t.Errorf("Expected hover to describe forward_to, got: %s", content.Value)
	}
}

// TestHoverWorkflow_DocumentUpdate tests hover after document changes
func TestHoverWorkflow_DocumentUpdate(t *testing.T) {
	setupTestServer()
	ctx := &glsp.Context{}

	uri := "file:///test/update.alloy"
	openDocument(t, ctx, uri, `loki.write "default" {}`)

	// Hover resolves against the opened text
	hover := requestHover(t, ctx, uri, 0, 3)
	if hover == nil {
		t.Fatal("Expected hover result before the update")
	}

	content := hover.Contents.(protocol.MarkupContent)
	if !strings.Contains(content.Value, "loki.write") {
		t.Errorf("Expected hover to describe loki.write, got: %s", content.Value)
	}

	// Replace the document text
	changeParams := &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{
				URI: uri,
			},
			Version: 2,
		},
		ContentChanges: []interface{}{
			protocol.TextDocumentContentChangeEventWhole{
				Text: `discovery.kubernetes "pods" {}`,
			},
		},
	}

	if err := lsp.DidChange(ctx, changeParams); err != nil {
		t.Fatalf("DidChange failed: %v", err)
	}

	// Hover now resolves against the replaced text
	hover = requestHover(t, ctx, uri, 0, 3)
	if hover == nil {
		t.Fatal("Expected hover result after the update")
	}

	content = hover.Contents.(protocol.MarkupContent)
	if !strings.Contains(content.Value, "discovery.kubernetes") {
		t.Errorf("Expected hover to describe discovery.kubernetes after update, got: %s", content.Value)
	}

	t.Logf("Hover after update: %s", content.Value)
}

// TestHoverWorkflow_MultipleDocuments tests hover across multiple open documents
func TestHoverWorkflow_MultipleDocuments(t *testing.T) {
	setupTestServer()
	ctx := &glsp.Context{}

	uri1 := "file:///test/metrics.alloy"
	openDocument(t, ctx, uri1, `prometheus.scrape "pods" {}`)

	uri2 := "file:///test/logs.alloy"
	openDocument(t, ctx, uri2, `loki.write "default" {}`)

	// Hover on the first document
	hover1 := requestHover(t, ctx, uri1, 0, 3)
	if hover1 == nil {
		t.Fatal("Expected hover result on first document")
	}
	content1 := hover1.Contents.(protocol.MarkupContent)
	if !strings.Contains(content1.Value, "prometheus.scrape") {
		t.Errorf("Expected hover on first document to describe prometheus.scrape, got: %s", content1.Value)
	}

	// Hover on the second document
	hover2 := requestHover(t, ctx, uri2, 0, 3)
	if hover2 == nil {
		t.Fatal("Expected hover result on second document")
	}
	content2 := hover2.Contents.(protocol.MarkupContent)
	if !strings.Contains(content2.Value, "loki.write") {
		t.Errorf("Expected hover on second document to describe loki.write, got: %s", content2.Value)
	}
}

// TestShippedDocsDictionary loads the docs file shipped with the repository
func TestShippedDocsDictionary(t *testing.T) {
	dict, err := dictionary.Load("../../docs/alloy-hover.toml")
	if err != nil {
		t.Fatalf("Loading shipped docs failed: %v", err)
	}

	if dict.Len() == 0 {
		t.Fatal("Shipped docs should not be empty")
	}

	payload, ok := dict.Lookup("prometheus.scrape")
	if !ok {
		t.Fatal("Shipped docs should document prometheus.scrape")
	}

	if !strings.Contains(payload, "prometheus.scrape") {
		t.Errorf("Payload for prometheus.scrape looks wrong: %s", payload)
	}
}
