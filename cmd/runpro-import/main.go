package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "RunPro server URL (e.g. https://runpro.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("RUNPRO_SERVER_API_KEY"), "API key sent as X-API-Key")
	stateDir := flag.String("state", "", "state directory (default ~/.runpro-import)")
	dryRun := flag.Bool("dry-run", false, "validate files but don't send to server")
	haeHost := flag.String("hae-host", "", "Health Auto Export TCP server host; enables workout sync")
	haePort := flag.Int("hae-port", 9000, "Health Auto Export TCP server port")
	since := flag.String("since", "", "sync start date YYYY-MM-DD (default: resume from last sync)")
	chunkDays := flag.Int("chunk-days", 7, "days per HAE query")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("runpro-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	paths := flag.Args()
	if len(paths) == 0 && *haeHost == "" {
		fmt.Fprintf(os.Stderr, "Usage: runpro-import -server <URL> [-dry-run] <export.json|export.csv|dir>...\n")
		fmt.Fprintf(os.Stderr, "       runpro-import -server <URL> -hae-host <host> [-since YYYY-MM-DD]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	// Strip trailing slash from server URL
	*serverURL = strings.TrimRight(*serverURL, "/")

	var start time.Time
	if *since != "" {
		t, err := time.ParseInLocation(models.DateLayout, *since, time.Local)
		if err != nil {
			log.Error("invalid -since date", "value", *since, "error", err)
			os.Exit(1)
		}
		start = t
	}

	// Open state database
	if *stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		*stateDir = filepath.Join(homeDir, ".runpro-import")
	}
	state, err := upload.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Create client (nil-safe in dry-run mode)
	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL).WithAPIKey(*apiKey)
	}

	if *dryRun {
		log.Info("DRY RUN mode: files will be validated but not sent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploader := upload.New(client, state, *dryRun, log)

	if len(paths) > 0 {
		if _, err := uploader.ImportPaths(ctx, paths); err != nil {
			log.Error("import failed", "error", err)
			printStats(uploader.Stats())
			os.Exit(1)
		}
	}

	if *haeHost != "" {
		hae := upload.NewHAEClient(*haeHost, *haePort)
		if _, err := uploader.SyncHAE(ctx, hae, start, time.Now(), *chunkDays); err != nil {
			log.Error("hae sync failed", "error", err)
			printStats(uploader.Stats())
			os.Exit(1)
		}
	}

	printStats(uploader.Stats())
	log.Info("import complete")
}

func printStats(stats upload.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files imported:   %d\n", stats.FilesImported)
	fmt.Printf("  Files skipped:    %d (already imported)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  HAE chunks:       %d\n", stats.HAEChunks)
	fmt.Printf("  Workouts added:   %d\n", stats.WorkoutsInserted)
	fmt.Printf("  Workouts rejected: %d\n", stats.WorkoutsRejected)
	fmt.Println()
}
