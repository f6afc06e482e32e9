package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Environment variables shared with child processes
const (
	EnvDebug       = "TIMEBOXD_DEBUG"
	EnvDebugFile   = "TIMEBOXD_DEBUG_FILE"
	EnvMaxLogFiles = "TIMEBOXD_MAX_LOG_FILES"
)

// DefaultMaxLogFiles is the rotation limit when nothing is configured
const DefaultMaxLogFiles = 1000

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize is called.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up the logger based on the debug flag and configuration.
// It returns the path of the log file in use, or "" when logging is discarded.
func Initialize(debug bool, debugFile string, maxLogFiles int) (string, error) {
	if os.Getenv(EnvDebug) == "1" {
		debug = true
	}
	if envDebugFile := os.Getenv(EnvDebugFile); envDebugFile != "" && debugFile == "" {
		debugFile = envDebugFile
	}
	if envMax := os.Getenv(EnvMaxLogFiles); envMax != "" && maxLogFiles == DefaultMaxLogFiles {
		if parsed, err := strconv.Atoi(envMax); err == nil {
			maxLogFiles = parsed
		}
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath := debugFile
	if logFilePath == "" {
		logDir, err := logDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		if maxLogFiles > 0 {
			if err := rotateLogs(logDir, maxLogFiles); err != nil {
				// Rotation failure shouldn't prevent logging
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}
		logFilePath = filepath.Join(logDir, uuid.New().String()+".log")
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Inherited debug (child processes) stays quiet on stdout
	if os.Getenv(EnvDebug) == "" {
		Logger.Info("Debug logging initialized", "log_file", logFilePath)
		fmt.Printf("Debug mode enabled. Logs: %s\n", logFilePath)
	}

	return logFilePath, nil
}

// rotateLogs deletes the oldest .log files so that a new one fits under maxLogFiles
func rotateLogs(dir string, maxLogFiles int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		modTime time.Time
		path    string
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{modTime: info.ModTime(), path: filepath.Join(dir, entry.Name())})
	}

	if len(files) < maxLogFiles {
		return nil
	}

	slices.SortFunc(files, func(a, b logFile) int { return a.modTime.Compare(b.modTime) })

	excess := len(files) - maxLogFiles + 1
	for _, f := range files[:excess] {
		if err := os.Remove(f.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", f.path, err)
		}
	}
	return nil
}

// logDir returns the OS-specific log directory
func logDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "timeboxd"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "timeboxd"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "timeboxd", "logs"), nil
	default:
		return filepath.Join(homeDir, ".timeboxd", "logs"), nil
	}
}
