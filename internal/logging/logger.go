// Package logging provides persistent file logging for diagnosing issues
// when the shell is launched from Finder (or a desktop launcher) without
// console access.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const (
	maxLogFileSize = 10 * 1024 * 1024 // 10MB
	maxLogFiles    = 5                // Keep 5 rotated log files
)

var (
	globalLogger *FileLogger
	mu           sync.Mutex
)

// FileLogger handles persistent logging to a file with rotation.
type FileLogger struct {
	logPath  string
	file     *os.File
	mu       sync.Mutex
	size     int64
	multiOut io.Writer // Writes to both file and stdout
}

// Init initializes the global file logger.
// logDir is the directory where logs will be stored. If empty it defaults
// to ~/Library/Logs/CompositeShell on macOS and
// ~/.local/share/composite-shell/logs elsewhere.
func Init(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger != nil {
		return nil // Already initialized
	}

	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		if runtime.GOOS == "darwin" {
			logDir = filepath.Join(homeDir, "Library", "Logs", "CompositeShell")
		} else {
			logDir = filepath.Join(homeDir, ".local", "share", "composite-shell", "logs")
		}
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	logPath := filepath.Join(logDir, "composite-shell.log")

	logger := &FileLogger{
		logPath: logPath,
	}

	if err := logger.openLogFile(); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	globalLogger = logger

	// Redirect Go's standard logger to use both file and stdout
	log.SetOutput(logger.multiOut)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	log.Printf("[logging] File logging initialized at: %s", logPath)

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger == nil {
		return nil
	}

	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if globalLogger.file != nil {
		log.Printf("[logging] Closing log file")
		if err := globalLogger.file.Close(); err != nil {
			return err
		}
		globalLogger.file = nil
	}

	globalLogger = nil
	return nil
}

// openLogFile opens (or creates) the log file and sets up multi-writer.
func (l *FileLogger) openLogFile() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}

	// Rotate up front if the existing file is already too large
	info, err := os.Stat(l.logPath)
	if err == nil {
		l.size = info.Size()
		if l.size >= maxLogFileSize {
			if err := l.rotateLogsLocked(); err != nil {
				return fmt.Errorf("failed to rotate logs: %w", err)
			}
			l.size = 0
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	file, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", l.logPath, err)
	}

	l.file = file
	l.multiOut = io.MultiWriter(os.Stdout, &trackingWriter{logger: l})

	return nil
}

// trackingWriter wraps the file writer and tracks bytes written for rotation.
type trackingWriter struct {
	logger *FileLogger
}

func (tw *trackingWriter) Write(p []byte) (n int, err error) {
	tw.logger.mu.Lock()
	defer tw.logger.mu.Unlock()

	if tw.logger.file == nil {
		return 0, fmt.Errorf("log file not open")
	}

	n, err = tw.logger.file.Write(p)
	if err != nil {
		return n, err
	}

	tw.logger.size += int64(n)

	if tw.logger.size >= maxLogFileSize {
		if rotateErr := tw.logger.rotateLogsLocked(); rotateErr != nil {
			// The data is already written; report the rotation failure and
			// keep going.
			fmt.Fprintf(os.Stderr, "Failed to rotate logs: %v\n", rotateErr)
		} else {
			tw.logger.size = 0
		}
	}

	return n, nil
}

// rotateLogsLocked rotates log files (must be called with lock held).
// composite-shell.log -> composite-shell.log.1
// composite-shell.log.1 -> composite-shell.log.2
// ...
// composite-shell.log.4 -> deleted
func (l *FileLogger) rotateLogsLocked() error {
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.file = nil
	}

	oldestLog := fmt.Sprintf("%s.%d", l.logPath, maxLogFiles-1)
	os.Remove(oldestLog) // Ignore error if file doesn't exist

	for i := maxLogFiles - 2; i >= 1; i-- {
		oldName := fmt.Sprintf("%s.%d", l.logPath, i)
		newName := fmt.Sprintf("%s.%d", l.logPath, i+1)
		os.Rename(oldName, newName) // Ignore error if file doesn't exist
	}

	if err := os.Rename(l.logPath, l.logPath+".1"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rename current log: %w", err)
	}

	file, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create new log file: %w", err)
	}

	l.file = file

	marker := fmt.Sprintf("\n=== Log rotated at %s ===\n\n", time.Now().Format(time.RFC3339))
	l.file.WriteString(marker)

	return nil
}
