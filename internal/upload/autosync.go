package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/claude/runpro/internal/models"
)

// autoSyncWorkoutDir is the AutoSync subdirectory holding one .hae file per workout.
const autoSyncWorkoutDir = "Workouts"

// decompress reads an AutoSync .hae file. Tests replace it.
var decompress = DecompressLZFSE

// DecompressLZFSE decompresses an LZFSE-compressed file using the lzfse CLI tool.
// Returns the decompressed bytes.
func DecompressLZFSE(path string) ([]byte, error) {
	cmd := exec.Command("lzfse", "-decode", "-i", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("lzfse decode %s: %w (stderr: %s)", path, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// isAutoSyncWorkout reports whether path is a workout file of an AutoSync
// directory. Metric and route files live elsewhere and are not imported.
func isAutoSyncWorkout(path string) bool {
	return filepath.Base(filepath.Dir(path)) == autoSyncWorkoutDir
}

// autoSyncPayload decompresses a workout .hae file and wraps it in a REST
// API payload with a single workout.
func autoSyncPayload(path string) ([]byte, error) {
	data, err := decompress(path)
	if err != nil {
		return nil, err
	}
	var w models.HAEFileWorkout
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%s is not an AutoSync workout: %w", path, err)
	}
	payload := models.HAEPayload{Data: models.HAEData{Workouts: []models.HAEWorkout{w.ToWorkout()}}}
	return json.Marshal(payload)
}
