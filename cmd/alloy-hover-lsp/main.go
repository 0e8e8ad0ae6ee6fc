package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/alloyconf/alloy-hover-lsp/internal/dictionary"
	"github.com/alloyconf/alloy-hover-lsp/internal/lsp"
	"github.com/alloyconf/alloy-hover-lsp/internal/server"
)

const (
	version = "0.1.0"
)

var (
	tcpMode  bool
	tcpPort  int
	logLevel string
	logFile  string
)

func init() {
	// Command-line flags
	flag.BoolVar(&tcpMode, "tcp", false, "Run server in TCP mode (for debugging)")
	flag.IntVar(&tcpPort, "port", 8765, "TCP port to listen on (used with -tcp)")
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "alloy-hover-lsp version %s\n\n", version)
	fmt.Fprintf(os.Stderr, "Usage: alloy-hover-lsp [options]\n\n")
	fmt.Fprintf(os.Stderr, "Hover documentation server for Alloy configuration files\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  %s\n", dictionary.EnvVar)
	fmt.Fprintf(os.Stderr, "    \tPath to the hover docs TOML file (default %q)\n", dictionary.DefaultPath)
}

func main() {
	flag.Parse()

	// Print version if requested
	if flag.NArg() > 0 && flag.Arg(0) == "version" {
		fmt.Printf("alloy-hover-lsp version %s\n", version)
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "alloy-hover-lsp version %s starting...\n", version)
	fmt.Fprintf(os.Stderr, "Transport: ")
	if tcpMode {
		fmt.Fprintf(os.Stderr, "TCP (port %d)\n", tcpPort)
	} else {
		fmt.Fprintf(os.Stderr, "STDIO\n")
	}
	fmt.Fprintf(os.Stderr, "Log level: %s\n", logLevel)

	// Set up logging
	setupLogging()

	// Load the hover docs before serving anything; a bad file is fatal
	docsPath := dictionary.DocsPath()
	dict, err := dictionary.Load(docsPath)
	if err != nil {
		log.Fatalf("Failed to load hover docs: %v", err)
	}
	log.Printf("Loaded %d hover entries from %s", dict.Len(), docsPath)

	// Initialize server state
	srv := server.New(dict)

	// Create GLSP handler
	handler := protocol.Handler{
		Initialize:            lsp.Initialize,
		Initialized:           lsp.Initialized,
		Shutdown:              lsp.Shutdown,
		SetTrace:              lsp.SetTrace,
		TextDocumentDidOpen:   lsp.DidOpen,
		TextDocumentDidChange: lsp.DidChange,
		TextDocumentDidClose:  lsp.DidClose,
		TextDocumentHover:     lsp.Hover,
	}

	// Create GLSP server
	glspServer := glspserver.NewServer(&handler, "alloy-hover-lsp", false)

	// Store our server instance for handler access
	lsp.SetServer(srv)

	// Start server with appropriate transport
	if tcpMode {
		fmt.Fprintf(os.Stderr, "Starting TCP server on port %d...\n", tcpPort)
		if err := glspServer.RunTCP(fmt.Sprintf("127.0.0.1:%d", tcpPort)); err != nil {
			log.Fatalf("TCP server error: %v", err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Starting STDIO server...\n")
		if err := glspServer.RunStdio(); err != nil {
			log.Fatalf("STDIO server error: %v", err)
		}
	}
}

// setupLogging configures the logging system based on command-line flags.
func setupLogging() {
	// Set log output
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		log.SetOutput(f)
	} else {
		log.SetOutput(os.Stderr)
	}

	// Set log flags
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// The glsp runtime logs through commonlog; map the flag onto its
	// verbosity scale
	verbosity := 0
	switch logLevel {
	case "debug":
		verbosity = 2
	case "info":
		verbosity = 1
	}
	if logFile != "" {
		commonlog.Configure(verbosity, &logFile)
	} else {
		commonlog.Configure(verbosity, nil)
	}
}
