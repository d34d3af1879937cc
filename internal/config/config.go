package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/takkernel/takpkg/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys recognized in the config file and as TAKPKG_<KEY> variables.
const (
	KeyOS          = "os"
	KeyArch        = "arch"
	KeyVersion     = "version"
	KeyBuildRoot   = "build_root"
	KeyPackageRoot = "package_root"
	KeyRecipe      = "recipe"
	KeyLogLevel    = "log_level"
)

// Keys lists every recognized key in display order.
var Keys = []string{KeyOS, KeyArch, KeyVersion, KeyBuildRoot, KeyPackageRoot, KeyRecipe, KeyLogLevel}

// ErrUnknownKey is returned by Set for keys outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// IsKey reports whether key is one of Keys.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Settings is the resolved configuration for one invocation.
type Settings struct {
	OS          string
	Arch        string
	Version     string
	BuildRoot   string
	PackageRoot string
	Recipe      string
	LogLevel    string
}

// Dir returns the path to the takpkg config directory (~/.takpkg/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the default config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

func setDefaults() {
	viper.SetDefault(KeyBuildRoot, "build")
	viper.SetDefault(KeyPackageRoot, ".")
	viper.SetDefault(KeyLogLevel, "info")
}

// Load initializes Viper to read from the config file and environment.
// An empty path selects FilePath(). A missing file is not an error.
func Load(path string) error {
	if path == "" {
		path = FilePath()
	}
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// BindFlag makes a command-line flag override the value for key.
func BindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	_ = viper.BindPFlag(key, flag)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the merged settings.
func Current() Settings {
	return Settings{
		OS:          viper.GetString(KeyOS),
		Arch:        viper.GetString(KeyArch),
		Version:     viper.GetString(KeyVersion),
		BuildRoot:   viper.GetString(KeyBuildRoot),
		PackageRoot: viper.GetString(KeyPackageRoot),
		Recipe:      viper.GetString(KeyRecipe),
		LogLevel:    viper.GetString(KeyLogLevel),
	}
}

// Set stores one key in the config file in use (or the default file) and
// leaves every other key in that file untouched. Values that came from
// bound flags or the environment are never persisted.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("%w %q (valid: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Keep the running configuration in step with the file.
	viper.Set(key, value)
	return nil
}

// Reset clears all loaded configuration. Used by tests.
func Reset() {
	viper.Reset()
}
