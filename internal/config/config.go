package config

import (
	log "LatticeDb/internal/logger"
	"flag"
	"fmt"
	"io"
	"os"
)

// Config holds the settings shared by the LatticeDB binaries. Every field can
// come from a flag or, failing that, from its LATTICE_* environment variable.
type Config struct {
	DataDir  string
	LogDir   string
	LogLevel log.LogLevel
	Addr     string
	Database string
}

const (
	envDataDir  = "LATTICE_DATA_DIR"
	envLogDir   = "LATTICE_LOG_DIR"
	envLogLevel = "LATTICE_LOG_LEVEL"
	envAddr     = "LATTICE_ADDR"
	envDatabase = "LATTICE_DATABASE"
)

// Load parses args (without the program name). Flags win over the environment.
func Load(name string, args []string) (Config, error) {
	return load(name, args, os.Getenv, os.Stderr)
}

func load(name string, args []string, getenv func(string) string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	dataDir := fs.String("data-dir", envOr(getenv, envDataDir, "data"), "directory holding database snapshots")
	logDir := fs.String("log-dir", envOr(getenv, envLogDir, "logs"), "directory for log files, empty logs to stderr")
	logLevel := fs.String("log-level", envOr(getenv, envLogLevel, "info"), "log level: debug, info or error")
	addr := fs.String("addr", envOr(getenv, envAddr, ":8080"), "HTTP listen or server address")
	database := fs.String("db", envOr(getenv, envDatabase, ""), "database to open at startup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	if *dataDir == "" {
		return Config{}, fmt.Errorf("data directory must not be empty")
	}

	return Config{
		DataDir:  *dataDir,
		LogDir:   *logDir,
		LogLevel: level,
		Addr:     *addr,
		Database: *database,
	}, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

// Logger registers the named logger according to the config: a daily file
// under LogDir when it is set, otherwise out.
func (c Config) Logger(name string, out io.Writer) (*log.Logger, error) {
	if c.LogDir == "" {
		return log.NewWithWriter(name, out, c.LogLevel), nil
	}
	return log.New(name, c.LogDir, c.LogLevel)
}
