package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/claude/hkreporter/internal/export"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "hkreporter server URL to forward payloads to (optional)")
	apiKey := flag.String("api-key", os.Getenv("HKREPORTER_AUTH_API_KEY"), "API key for the ingest endpoint")
	root := flag.String("path", "", "directory of native payload JSON files")
	outPath := flag.String("out", "-", "output file for JSON lines (- for stdout)")
	stateDir := flag.String("state", "", "state directory (default ~/.hkreporter-export)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("hkreporter-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *root == "" {
		fmt.Fprintf(os.Stderr, "Usage: hkreporter-export -path <dir> [-out records.jsonl] [-server <URL> -api-key <key>]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if info, err := os.Stat(*root); err != nil || !info.IsDir() {
		log.Error("payload directory not found", "path", *root)
		os.Exit(1)
	}

	// Open state database
	dir := *stateDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".hkreporter-export")
	}
	state, err := export.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.OpenFile(*outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Error("failed to open output", "path", *outPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	var sender export.Sender
	if *serverURL != "" {
		sender = export.NewClient(*serverURL, *apiKey)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := export.New(sender, state, *root, out, log).Run(ctx)
	if err != nil {
		log.Error("export failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("export complete")
}

func printStats(stats *export.Stats) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "=== Export Summary ===")
	fmt.Fprintf(os.Stderr, "  Files total:      %d\n", stats.FilesTotal)
	fmt.Fprintf(os.Stderr, "  Files converted:  %d\n", stats.FilesConverted)
	fmt.Fprintf(os.Stderr, "  Files skipped:    %d (already converted)\n", stats.FilesSkipped)
	fmt.Fprintf(os.Stderr, "  Files errored:    %d\n", stats.FilesErrored)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  Records written:  %d\n", stats.RecordsWritten)
	fmt.Fprintf(os.Stderr, "  Records rejected: %d\n", stats.RecordsRejected)
	fmt.Fprintf(os.Stderr, "  Records sent:     %d\n", stats.RecordsSent)
	fmt.Fprintln(os.Stderr)
}
