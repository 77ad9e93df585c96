// Command ygo-catalog-mcp exposes the card catalog to MCP clients over stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/mcptools"
	"github.com/ramonehamilton/ygo-catalog/internal/version"
)

func main() {
	source := flag.String("source", "card.json", "path or URL of card.json")
	pageSize := flag.Int("page-size", catalog.DefaultPageSize, "cards per search page")
	flag.Parse()

	// stdout carries the protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ds, err := catalog.NewLoader(catalog.SourceFor(*source), logger).Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, catalog.RetryMessage)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer("ygo-catalog", version.GetVersion())
	mcptools.New(catalog.NewStore(ds), *pageSize).Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
