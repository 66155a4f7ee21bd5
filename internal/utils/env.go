package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kelsos/rover-sync/internal/logger"
)

// LoadEnvironment loads environment variables from .env files
// It tries to load from the current directory and from the directory of the executable
func LoadEnvironment() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory or error loading it: %v", err)
	} else {
		logger.Debug("Successfully loaded .env file from current directory")
	}

	execPath, err := os.Executable()
	if err == nil {
		execDir := filepath.Dir(execPath)
		envPath := filepath.Join(execDir, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Debug("No .env file found in app directory (%s) or error loading it: %v", execDir, err)
		} else {
			logger.Debug("Successfully loaded .env file from app directory: %s", execDir)
		}
	} else {
		logger.Debug("Could not determine executable path: %v", err)
	}
}

// LoadEnvFile loads a single env file into the process environment.
// Variables that are already set keep their values. A missing file is not
// an error; the caller falls back to whatever the process environment holds.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Env file %s not found, using process environment", path)
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	logger.Debug("Loaded env file %s", path)
	return nil
}

// RequireEnv returns the value of every named variable or the name of the first one missing
func RequireEnv(names ...string) (map[string]string, string) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			return nil, name
		}
		values[name] = value
	}
	return values, ""
}
