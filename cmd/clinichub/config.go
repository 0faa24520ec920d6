// Config loading for the clinichub CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/oakridgedental/clinichub/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir    = "data_dir"
	cfgKeyBackupDir  = "backup_dir"
	cfgKeyListenAddr = "listen_addr"
	cfgKeyLogLevel   = "log_level"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Clinichub configuration

# Directory holding clinic.db
data_dir: .clinichub-db

# Directory for backup snapshots (default: <data_dir>/backups)
# backup_dir:

# HTTP listen address
listen_addr: ":8480"

# Log level: debug, info, warn, error
log_level: info
`

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if rootFlags.configDir != "" {
		return rootFlags.configDir
	}
	if v := os.Getenv("CLINICHUB_CONFIG_DIR"); v != "" {
		return v
	}
	return ".clinichub"
}

// loadConfig reads config.yaml from the config directory with Viper,
// creating the directory and a default file on first run, and applies
// flag overrides. A missing config.yaml is not an error.
func loadConfig() (types.Config, error) {
	var config types.Config

	configDir := resolveConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return config, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return config, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDataDir, ".clinichub-db")
	v.SetDefault(cfgKeyListenAddr, types.DefaultListenAddr)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	config = types.Config{
		DataDir:    v.GetString(cfgKeyDataDir),
		BackupDir:  v.GetString(cfgKeyBackupDir),
		ListenAddr: v.GetString(cfgKeyListenAddr),
		LogLevel:   v.GetString(cfgKeyLogLevel),
	}
	if rootFlags.dataDir != "" {
		config.DataDir = rootFlags.dataDir
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
