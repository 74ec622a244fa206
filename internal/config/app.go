package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// ConfigApp holds the settings of a monitor run. Every key is optional.
type ConfigApp struct {
	Monitor MonitorConfig `toml:"monitor"`
}

// MonitorConfig lists file locations and knobs. Relative paths are resolved
// against the directory passed to CarregarConfiguracaoApp.
type MonitorConfig struct {
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	EmailConfig     string `toml:"email_config"`
	StateFile       string `toml:"state_file"`
	StateFileMode   string `toml:"state_file_mode"`
	HistoryDB       string `toml:"history_db"`
	MetricsTextfile string `toml:"metrics_textfile"`
	ProbeAddress    string `toml:"probe_address"`
}

// ParseStateFileMode parses the octal permission string of the state file.
func (m *MonitorConfig) ParseStateFileMode() (fs.FileMode, error) {
	if m.StateFileMode == "" {
		return 0o666, nil
	}
	modo, err := strconv.ParseUint(m.StateFileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing state_file_mode %q: %w", m.StateFileMode, err)
	}
	return fs.FileMode(modo).Perm(), nil
}

// CarregarConfiguracaoApp reads the optional TOML settings file. A missing
// file is not an error: the defaults are returned instead.
func CarregarConfiguracaoApp(caminho, diretorioBase string) (*ConfigApp, error) {
	cfg := &ConfigApp{}

	data, err := os.ReadFile(caminho)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", caminho, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", caminho, err)
		}
	}

	applyDefaults(cfg)
	cfg.resolvePaths(diretorioBase)
	return cfg, nil
}

// Padrao returns the default settings resolved against diretorioBase.
func Padrao(diretorioBase string) *ConfigApp {
	cfg := &ConfigApp{}
	applyDefaults(cfg)
	cfg.resolvePaths(diretorioBase)
	return cfg
}

func applyDefaults(cfg *ConfigApp) {
	if cfg.Monitor.LogLevel == "" {
		cfg.Monitor.LogLevel = "info"
	}
	if cfg.Monitor.LogFile == "" {
		cfg.Monitor.LogFile = filepath.Join("service_logs", "script_log.txt")
	}
	if cfg.Monitor.EmailConfig == "" {
		cfg.Monitor.EmailConfig = "email_config.txt"
	}
	if cfg.Monitor.StateFile == "" {
		cfg.Monitor.StateFile = "machine_info.txt"
	}
	if cfg.Monitor.StateFileMode == "" {
		cfg.Monitor.StateFileMode = "0666"
	}
	if cfg.Monitor.ProbeAddress == "" {
		cfg.Monitor.ProbeAddress = "8.8.8.8:80"
	}
}

func (cfg *ConfigApp) resolvePaths(base string) {
	cfg.Monitor.LogFile = resolvePath(base, cfg.Monitor.LogFile)
	cfg.Monitor.EmailConfig = resolvePath(base, cfg.Monitor.EmailConfig)
	cfg.Monitor.StateFile = resolvePath(base, cfg.Monitor.StateFile)
	cfg.Monitor.HistoryDB = resolvePath(base, cfg.Monitor.HistoryDB)
	cfg.Monitor.MetricsTextfile = resolvePath(base, cfg.Monitor.MetricsTextfile)
}

// Empty paths stay empty: they switch the matching feature off.
func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
