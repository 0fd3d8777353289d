package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/michaeldyrynda/fsshell/internal/privileged"
)

const (
	// FileName is the config file name without extension.
	FileName = "fsshell"
	// EnvPrefix prefixes environment overrides, e.g. FSSHELL_MSIZE_DELAY.
	EnvPrefix = "FSSHELL"
)

const (
	DefaultLogLevel   = "warn"
	DefaultTempPrefix = "fsshell-"
	DefaultMsizeDelay = 400 * time.Millisecond
)

var ErrConfigExists = errors.New("config file already exists")

// Config represents the fsshell configuration
type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	TempPrefix string           `mapstructure:"temp_prefix"`
	Msize      MsizeConfig      `mapstructure:"msize"`
	Privileged PrivilegedConfig `mapstructure:"privileged"`
}

// MsizeConfig controls the size-without-mtime fixture.
type MsizeConfig struct {
	// Delay straddles coarse filesystem timestamp resolution.
	Delay time.Duration `mapstructure:"delay"`
}

// PrivilegedConfig controls how mount and umount are elevated.
type PrivilegedConfig struct {
	Sudo      string                   `mapstructure:"sudo"`
	OnFailure privileged.FailurePolicy `mapstructure:"on_failure"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		TempPrefix: DefaultTempPrefix,
		Msize:      MsizeConfig{Delay: DefaultMsizeDelay},
		Privileged: PrivilegedConfig{
			Sudo:      privileged.DefaultSudo,
			OnFailure: privileged.PolicyWarn,
		},
	}
}

// Load reads fsshell.yaml. An explicit file must exist; otherwise the
// working directory and the global config dir are searched and a missing
// file yields defaults. FSSHELL_* environment variables override both.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := GetGlobalConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("temp_prefix", d.TempPrefix)
	v.SetDefault("msize.delay", d.Msize.Delay)
	v.SetDefault("privileged.sudo", d.Privileged.Sudo)
	v.SetDefault("privileged.on_failure", string(d.Privileged.OnFailure))
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		failurePolicyHook(),
	)
}

// failurePolicyHook validates privileged.on_failure while decoding.
func failurePolicyHook() mapstructure.DecodeHookFuncType {
	policyType := reflect.TypeOf(privileged.FailurePolicy(""))
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != policyType {
			return data, nil
		}
		return privileged.ParsePolicy(reflect.ValueOf(data).String())
	}
}

// Save writes cfg to fsshell.yaml in dir. Keys already present in the
// file that fsshell does not know about are preserved. An existing file
// is only rewritten when force is set.
func Save(dir string, cfg *Config, force bool) (string, error) {
	configPath := filepath.Join(dir, FileName+".yaml")

	// Read existing config if it exists (to preserve any manual edits)
	var existing map[string]interface{}
	content, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if !force {
			return configPath, fmt.Errorf("%s: %w", configPath, ErrConfigExists)
		}
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return configPath, fmt.Errorf("parsing existing config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return configPath, fmt.Errorf("reading existing config: %w", err)
	}

	if existing == nil {
		existing = make(map[string]interface{})
	}

	existing["log_level"] = cfg.LogLevel
	existing["temp_prefix"] = cfg.TempPrefix

	msize := section(existing, "msize")
	msize["delay"] = cfg.Msize.Delay.String()

	priv := section(existing, "privileged")
	priv["sudo"] = cfg.Privileged.Sudo
	priv["on_failure"] = cfg.Privileged.OnFailure.String()

	out, err := yaml.Marshal(existing)
	if err != nil {
		return configPath, fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return configPath, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0644); err != nil {
		return configPath, fmt.Errorf("writing config: %w", err)
	}

	return configPath, nil
}

func section(m map[string]interface{}, key string) map[string]interface{} {
	if existing, ok := m[key].(map[string]interface{}); ok {
		return existing
	}
	s := make(map[string]interface{})
	m[key] = s
	return s
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fsshell"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", "fsshell"), nil
}
