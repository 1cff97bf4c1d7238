package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dstack-labs/create-dstack-app/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyTemplatesDir     = "templates_dir"
	KeyInstallCommand   = "install_command"
	KeyVCSCommand       = "vcs_command"
	KeyDevCommand       = "dev_command"
	KeyMinNodeVersion   = "min_node_version"
	KeySkipRuntimeCheck = "skip_runtime_check"
	KeyLogLevel         = "log_level"
)

// Settings are the user-tunable knobs of a scaffold run.
type Settings struct {
	TemplatesDir     string `mapstructure:"templates_dir"`
	InstallCommand   string `mapstructure:"install_command"`
	VCSCommand       string `mapstructure:"vcs_command"`
	DevCommand       string `mapstructure:"dev_command"`
	MinNodeVersion   string `mapstructure:"min_node_version"`
	SkipRuntimeCheck bool   `mapstructure:"skip_runtime_check"`
	LogLevel         string `mapstructure:"log_level"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		InstallCommand: "npm install",
		VCSCommand:     "git init",
		DevCommand:     "npm run dev",
		MinNodeVersion: "16.7.0",
		LogLevel:       "warn",
	}
}

// Keys returns every known setting key.
func Keys() []string {
	return []string{
		KeyTemplatesDir,
		KeyInstallCommand,
		KeyVCSCommand,
		KeyDevCommand,
		KeyMinNodeVersion,
		KeySkipRuntimeCheck,
		KeyLogLevel,
	}
}

// Dir returns the path to the config directory (~/.create-dstack-app/).
// The <PREFIX>_HOME environment variable overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.create-dstack-app/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment and
// returns the resulting settings. A missing config file is not an error.
func Load() (*Settings, error) {
	return load(viper.GetViper(), FilePath())
}

// LoadFrom reads settings from the given file and the environment using a
// private Viper instance.
func LoadFrom(path string) (*Settings, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Settings, error) {
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault(KeyTemplatesDir, d.TemplatesDir)
	v.SetDefault(KeyInstallCommand, d.InstallCommand)
	v.SetDefault(KeyVCSCommand, d.VCSCommand)
	v.SetDefault(KeyDevCommand, d.DevCommand)
	v.SetDefault(KeyMinNodeVersion, d.MinNodeVersion)
	v.SetDefault(KeySkipRuntimeCheck, d.SkipRuntimeCheck)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	// Ignore the error if the config file doesn't exist yet.
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
