package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelsos/rover-sync/internal/table"
)

const snapshotDir = "snapshots"

// Snapshot is a saved optimization summary and the query that produced it
type Snapshot struct {
	Query     map[string]any `json:"query,omitempty"`
	CreatedAt int64          `json:"created_at"`
	Summary   table.Table    `json:"summary"`
}

// GetAppDataDir returns the application data directory, creating it if needed.
// An empty override means ~/.rover-sync.
func GetAppDataDir(override string) (string, error) {
	appDataDir := override
	if appDataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		appDataDir = filepath.Join(homeDir, ".rover-sync")
	}

	if err := os.MkdirAll(appDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create app data directory: %w", err)
	}

	return appDataDir, nil
}

// SaveSnapshot writes summary under <dataDir>/snapshots and returns the file path
func SaveSnapshot(dataDir string, query map[string]any, summary table.Table) (string, error) {
	appDataDir, err := GetAppDataDir(dataDir)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(appDataDir, snapshotDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	now := time.Now()
	data := Snapshot{
		Query:     query,
		CreatedAt: now.Unix(),
		Summary:   summary,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filePath := filepath.Join(dir, fmt.Sprintf("summary_%s.json", now.Format("2006-01-02_15-04-05.000000")))
	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return filePath, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot
func LoadSnapshot(filePath string) (Snapshot, error) {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var data Snapshot
	if err := json.Unmarshal(fileData, &data); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return data, nil
}
