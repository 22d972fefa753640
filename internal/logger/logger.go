package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

const (
	appDirName  = ".quicklook-landing"
	logFileName = "debug.log"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger handles all application logging
type Logger struct {
	file   *os.File
	logger *log.Logger
	level  LogLevel
	mirror io.Writer
	mu     sync.Mutex
	path   string
}

// Initialize sets up the logger singleton. In debug mode every line is
// mirrored to stderr as well.
func Initialize(debugMode bool) error {
	once.Do(func() {
		instance = newLogger(debugMode)
		// Always try to set up logging, but gracefully fall back on failure
		if err := instance.setupLogFile(); err != nil {
			_ = instance.setupFallbackLogger()
		}
	})
	return nil
}

func newLogger(debugMode bool) *Logger {
	l := &Logger{level: INFO}
	if debugMode {
		l.level = DEBUG
		l.mirror = os.Stderr
	}
	return l
}

// GetLogger returns the logger instance
func GetLogger() *Logger {
	if instance == nil {
		Initialize(false)
	}
	return instance
}

// New creates a standalone logger writing to w. Used by tests and by
// commands that want plain console output.
func New(w io.Writer, level LogLevel) *Logger {
	return &Logger{
		logger: log.New(w, "", 0),
		level:  level,
	}
}

func (l *Logger) setupLogFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(homeDir, appDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, logFileName)

	l.file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	l.logger = log.New(l.file, "", 0)
	l.path = logPath

	l.Info("=== QuickLook landing started ===")
	l.Debug("Log file: %s", logPath)

	return nil
}

// setupFallbackLogger configures logging to the temp dir, or stderr as a last resort
func (l *Logger) setupFallbackLogger() error {
	tmpPath := filepath.Join(os.TempDir(), "quicklook-landing-debug.log")
	if f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		l.file = f
		l.logger = log.New(f, "", 0)
		l.path = tmpPath
		l.Info("Using fallback log path: %s", tmpPath)
		return nil
	}

	l.file = nil
	l.logger = log.New(os.Stderr, "", 0)
	l.mirror = nil
	l.path = ""
	l.Info("Falling back to stderr logging (no file)")
	return nil
}

// Close closes the log file
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.logger.Println(l.format(INFO, "=== QuickLook landing stopped ===", 2))
		l.file.Close()
		l.file = nil
	}
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	if instance != nil && instance.path != "" {
		return instance.path
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, appDirName, logFileName)
}

func (level LogLevel) String() string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config string ("debug", "warn", ...) to a level; unknown values mean INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// SetLevel changes the minimum level written
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) format(level LogLevel, message string, skip int) string {
	_, file, line, _ := runtime.Caller(skip)
	file = filepath.Base(file)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s [%s] %s:%d - %s", timestamp, level, file, line, message)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logger == nil || level < l.level {
		return
	}

	logLine := l.format(level, fmt.Sprintf(format, args...), 3)
	l.logger.Println(logLine)

	if l.mirror != nil {
		fmt.Fprintln(l.mirror, logLine)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Static functions for easier access
func Debug(format string, args ...interface{}) {
	GetLogger().log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	GetLogger().log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	GetLogger().log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().log(ERROR, format, args...)
}
