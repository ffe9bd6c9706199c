package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"weatherlookup.app/internal/ports"
)

// FileLoggerAdapter writes structured JSON lines to an append-only file
type FileLoggerAdapter struct {
	filePath string
	file     *os.File
	mutex    sync.Mutex
}

// NewFileLoggerAdapter opens (or creates) the log file at logPath
func NewFileLoggerAdapter(logPath string) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLoggerAdapter{
		filePath: logPath,
		file:     file,
	}, nil
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry("DEBUG", msg, fields...)
}

func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry("INFO", msg, fields...)
}

func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry("WARN", msg, fields...)
}

func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry("ERROR", msg, fields...)
}

// Path returns the file the adapter writes to
func (f *FileLoggerAdapter) Path() string {
	return f.filePath
}

// Close flushes and closes the log file. Later writes are dropped.
func (f *FileLoggerAdapter) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *FileLoggerAdapter) writeLogEntry(level, msg string, fields ...ports.Field) {
	logEntry := make(map[string]interface{}, len(fields)+3)
	for _, field := range fields {
		logEntry[field.Key] = normalizeFieldValue(field.Value)
	}
	// reserved keys win over fields of the same name
	logEntry["timestamp"] = time.Now().Format(time.RFC3339Nano)
	logEntry["level"] = level
	logEntry["message"] = msg

	jsonData, err := json.Marshal(logEntry)
	if err != nil {
		jsonData, _ = json.Marshal(map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339Nano),
			"level":     "ERROR",
			"message":   "failed to marshal log entry",
			"error":     err.Error(),
		})
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.file == nil {
		return
	}
	if _, err := f.file.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}

// normalizeFieldValue turns errors into their message so they survive JSON encoding
func normalizeFieldValue(v interface{}) interface{} {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}
