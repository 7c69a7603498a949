package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	clientEnvPrefix   = "FOCUS_"
	maxConfigFileSize = 1 << 20
)

// ClientConfig holds the settings of the focus terminal client.
type ClientConfig struct {
	BackendURL     string        `koanf:"backend_url"`
	StatePath      string        `koanf:"state_path"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	Log            ClientLog     `koanf:"log"`
}

type ClientLog struct {
	Level    string `koanf:"level"`
	Encoding string `koanf:"encoding"`
	Output   string `koanf:"output"`
}

// DefaultClientPath is ~/.config/focus/config.yaml.
func DefaultClientPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "focus", "config.yaml"), nil
}

// LoadClient reads the YAML file at path when it exists and then applies
// FOCUS_* environment overrides (FOCUS_BACKEND_URL, FOCUS_LOG_LEVEL, ...).
// An empty path means DefaultClientPath.
func LoadClient(path string) (*ClientConfig, error) {
	_ = godotenv.Load(".env")

	k := koanf.New(".")

	if path == "" {
		var err error
		if path, err = DefaultClientPath(); err != nil {
			return nil, err
		}
	}

	content, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(clientEnvPrefix, ".", clientEnvKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg ClientConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FOCUS_LOG_LEVEL -> log.level, FOCUS_BACKEND_URL -> backend_url
func clientEnvKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, clientEnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	return io.ReadAll(f)
}

func (c *ClientConfig) applyDefaults() error {
	if c.BackendURL == "" {
		c.BackendURL = "http://localhost:8080"
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")

	if c.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.StatePath = filepath.Join(home, ".config", "focus", "state.db")
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}
	return nil
}
