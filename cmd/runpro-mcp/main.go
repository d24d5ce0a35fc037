// Command runpro-mcp serves the RunPro MCP tools over stdio, reading data
// from a running RunPro server through its REST API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/runpro/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("RUNPRO_URL"), "RunPro server URL (e.g. https://runpro.tail1234.ts.net)")
	lang := flag.String("lang", "th", "language of session guides (th or en)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("runpro-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: runpro-mcp -server <URL> [-lang th|en]\n")
		os.Exit(1)
	}

	s := mcp.New(mcp.NewHTTPClient(*serverURL), Version, *lang, log)
	log.Info("runpro-mcp serving stdio", "server", *serverURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server failed", "error", err)
		os.Exit(1)
	}
}
