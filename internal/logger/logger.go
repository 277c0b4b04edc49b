package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type LogLevel int

type Logger struct {
	logLevel LogLevel
	logDir   string
	logger   *log.Logger
}

const (
	DEBUG LogLevel = iota
	INFO
	ERROR
)

var (
	registryMu sync.RWMutex
	registry   = map[string]*Logger{}
	discard    = &Logger{logLevel: ERROR + 1, logger: log.New(io.Discard, "", 0)}
)

// Get returns the logger registered under name. Unregistered names get a
// logger that drops everything, so callers never need a nil check.
func Get(name string) *Logger {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if ln, ok := registry[name]; ok {
		return ln
	}

	return discard
}

// New registers a file backed logger. The file lives in logDir and is named
// after the current day.
func New(name string, logDir string, logLevel LogLevel) (*Logger, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if logger, exists := registry[name]; exists {
		return logger, nil
	}

	logger := &Logger{logLevel: logLevel, logDir: logDir}
	if err := logger.init(); err != nil {
		return nil, err
	}

	registry[name] = logger
	return logger, nil
}

// NewWithWriter registers a logger that writes to w instead of a log file.
func NewWithWriter(name string, w io.Writer, logLevel LogLevel) *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()

	logger := &Logger{
		logLevel: logLevel,
		logger:   log.New(w, name+" ", log.Ldate|log.Ltime),
	}

	registry[name] = logger
	return logger
}

func (l *Logger) init() error {
	if err := os.MkdirAll(l.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")

	logFile, err := os.OpenFile(
		filepath.Join(l.logDir, fmt.Sprintf("Lattice-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.logger = log.New(logFile, "", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

func (l *Logger) Debug(format string, v ...any) {
	l.output(DEBUG, "DEBUG: ", format, v...)
}

func (l *Logger) Info(format string, v ...any) {
	l.output(INFO, "INFO: ", format, v...)
}

func (l *Logger) Error(format string, v ...any) {
	l.output(ERROR, "ERROR: ", format, v...)
}

func (l *Logger) output(level LogLevel, prefix, format string, v ...any) {
	if level < l.logLevel {
		return
	}
	// depth 3 points Lshortfile at the caller of Debug/Info/Error
	_ = l.logger.Output(3, fmt.Sprintf(prefix+format, v...))
}

// ParseLevel maps a level name to a LogLevel. Unknown names report an error
// alongside INFO.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info", "":
		return INFO, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case ERROR:
		return "error"
	default:
		return "off"
	}
}

func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = map[string]*Logger{}
}
