// Package upload sends workout exports to a RunPro server, remembering what
// was already sent.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/runpro/internal/ingest"
	"github.com/claude/runpro/internal/models"
)

// lastHAESyncKey stores the end date of the last HAE TCP sync.
const lastHAESyncKey = "hae_last_workouts_sync"

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsInserted int
	WorkoutsRejected int

	HAEChunks int
}

func (s *Stats) add(r *ingest.Result) {
	if r == nil {
		return
	}
	s.WorkoutsInserted += r.WorkoutsInserted
	s.WorkoutsRejected += r.WorkoutsRejected
}

// Uploader imports export files or HAE TCP queries into a RunPro server.
type Uploader struct {
	client *Client
	state  *StateDB
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. state may be nil to disable deduplication.
func New(client *Client, state *StateDB, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{client: client, state: state, dryRun: dryRun, log: log}
}

// Stats returns the counters accumulated so far.
func (u *Uploader) Stats() Stats { return u.stats }

// ImportPaths imports every .json and .csv file named in paths, plus the
// workout .hae files of AutoSync directories. Directories are walked
// recursively.
func (u *Uploader) ImportPaths(ctx context.Context, paths []string) (*Stats, error) {
	for _, p := range paths {
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || exportKind(path) == "" {
				return nil
			}
			if err := u.ImportFile(ctx, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				u.stats.FilesErrored++
				u.log.Error("import failed", "file", path, "error", err)
			}
			return nil
		})
		if err != nil {
			return &u.stats, err
		}
	}
	return &u.stats, nil
}

func exportKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "hae"
	case ".csv":
		return "alpha"
	case ".hae":
		if isAutoSyncWorkout(path) {
			return "autosync"
		}
	}
	return ""
}

// ImportFile sends one export unless the state DB says it was already sent.
func (u *Uploader) ImportFile(ctx context.Context, path string) error {
	kind := exportKind(path)
	if kind == "" {
		return fmt.Errorf("%s: unsupported export type (want .json, .csv or an AutoSync workout)", path)
	}
	u.stats.FilesTotal++

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}
	if u.state != nil {
		done, err := u.state.IsImported(path, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			u.stats.FilesSkipped++
			u.log.Debug("already imported", "file", path)
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var result *ingest.Result
	switch kind {
	case "hae":
		var payload models.HAEPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%s is not a Health Auto Export payload: %w", path, err)
		}
		if u.dryRun {
			u.log.Info("dry-run: would import", "file", path, "workouts", len(payload.Data.Workouts))
			return nil
		}
		result, err = u.client.SendHAE(ctx, data)
	case "autosync":
		payload, perr := autoSyncPayload(path)
		if perr != nil {
			return perr
		}
		if u.dryRun {
			u.log.Info("dry-run: would import", "file", path, "workouts", 1)
			return nil
		}
		result, err = u.client.SendHAE(ctx, payload)
	case "alpha":
		if u.dryRun {
			u.log.Info("dry-run: would import", "file", path, "bytes", len(data))
			return nil
		}
		result, err = u.client.SendAlpha(ctx, data)
	}
	if err != nil {
		return err
	}

	u.stats.FilesImported++
	u.stats.add(result)
	u.log.Info("imported", "file", path, "inserted", result.WorkoutsInserted, "skipped", result.WorkoutsSkipped, "rejected", result.WorkoutsRejected)

	if u.state != nil {
		if err := u.state.MarkImported(path, info.Size(), hash); err != nil {
			u.log.Warn("failed to record import", "file", path, "error", err)
		}
	}
	return nil
}

// SyncHAE pulls workouts from the HAE TCP server in chunks of chunkDays and
// forwards each chunk to the server. A zero start resumes from the last
// recorded sync.
func (u *Uploader) SyncHAE(ctx context.Context, hae *HAEClient, start, end time.Time, chunkDays int) (*Stats, error) {
	if start.IsZero() && u.state != nil {
		last, err := u.state.GetSyncState(lastHAESyncKey)
		if err != nil {
			return &u.stats, fmt.Errorf("reading sync state: %w", err)
		}
		if last != "" {
			if t, err := time.ParseInLocation(models.DateLayout, last, end.Location()); err == nil {
				start = t
			}
		}
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	if chunkDays <= 0 {
		chunkDays = 7
	}
	chunk := time.Duration(chunkDays) * 24 * time.Hour

	for from := start; from.Before(end); from = from.Add(chunk) {
		to := from.Add(chunk)
		if to.After(end) {
			to = end
		}

		raw, err := hae.QueryWorkoutsWithRetry(ctx, from, to, u.log)
		if err != nil {
			if ctx.Err() != nil {
				return &u.stats, ctx.Err()
			}
			u.log.Warn("skipping chunk", "from", from.Format(models.DateLayout), "to", to.Format(models.DateLayout), "error", err)
			continue
		}
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}

		u.stats.HAEChunks++
		if u.dryRun {
			u.log.Info("dry-run: would forward workouts", "from", from.Format(models.DateLayout), "bytes", len(raw))
			continue
		}
		result, err := u.client.SendHAE(ctx, raw)
		if err != nil {
			return &u.stats, fmt.Errorf("forwarding workouts: %w", err)
		}
		u.stats.add(result)
	}

	if !u.dryRun && u.state != nil {
		if err := u.state.SetSyncState(lastHAESyncKey, end.Format(models.DateLayout)); err != nil {
			u.log.Warn("failed to save sync state", "error", err)
		}
	}
	return &u.stats, nil
}
