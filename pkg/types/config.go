package types

import "errors"

// Config holds the parameters for Backend.Attach and the HTTP server.
type Config struct {
	// DataDir is the directory holding clinic.db. Defaults to ".".
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// BackupDir is where backup snapshots are written. Defaults to
	// DataDir/backups.
	BackupDir string `json:"backup_dir" yaml:"backup_dir"`

	// ListenAddr is the HTTP listen address, e.g. ":8480".
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Config validation errors.
var (
	ErrListenAddrEmpty = errors.New("listen address must not be empty")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// Default configuration values.
const (
	DefaultListenAddr = ":8480"
	DefaultLogLevel   = "info"
)

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure. Empty optional fields are filled with
// defaults by the caller, not here.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrEmpty
	}
	if c.LogLevel != "" && !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
