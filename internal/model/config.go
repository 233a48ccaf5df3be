package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds the durable file locations. Relative paths are
// resolved against DataDir.
type StorageConfig struct {
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	TasksFile    string `mapstructure:"tasks_file" yaml:"tasks_file"`
	UsersFile    string `mapstructure:"users_file" yaml:"users_file"`
	TaskOverview string `mapstructure:"task_overview_file" yaml:"task_overview_file"`
	UserOverview string `mapstructure:"user_overview_file" yaml:"user_overview_file"`
}

// LogConfig holds settings for the rotating session log.
type LogConfig struct {
	File       string `mapstructure:"file" yaml:"file"`
	Level      string `mapstructure:"level" yaml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/tasktracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasktracker", "config.yaml")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			DataDir:      ".",
			TasksFile:    "tasks.txt",
			UsersFile:    "users.txt",
			TaskOverview: "task_overview.txt",
			UserOverview: "user_overview.txt",
		},
		Log: LogConfig{
			File:       "task_tracker.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.data_dir", ".")
	v.SetDefault("storage.tasks_file", "tasks.txt")
	v.SetDefault("storage.users_file", "users.txt")
	v.SetDefault("storage.task_overview_file", "task_overview.txt")
	v.SetDefault("storage.user_overview_file", "user_overview.txt")
	v.SetDefault("log.file", "task_tracker.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// Resolve joins a configured file name with the data directory unless
// the name is already absolute.
func (c StorageConfig) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// TasksPath returns the resolved task file path.
func (c StorageConfig) TasksPath() string { return c.Resolve(c.TasksFile) }

// UsersPath returns the resolved user directory file path.
func (c StorageConfig) UsersPath() string { return c.Resolve(c.UsersFile) }

// TaskOverviewPath returns the resolved task overview artifact path.
func (c StorageConfig) TaskOverviewPath() string { return c.Resolve(c.TaskOverview) }

// UserOverviewPath returns the resolved user overview artifact path.
func (c StorageConfig) UserOverviewPath() string { return c.Resolve(c.UserOverview) }

// LogPath returns the resolved log file path.
func (c AppConfig) LogPath() string { return c.Storage.Resolve(c.Log.File) }
