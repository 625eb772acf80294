package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/HueCodes/vuelint/internal/logger"
)

// ErrUnknownFormat is returned for a config file whose extension is neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// configFileNames lists config file names in discovery priority order.
var configFileNames = []string{
	".vuelint.yaml",
	".vuelint.yml",
	"vuelint.yaml",
	".vuelint.toml",
}

// Discover searches dir for a config file and returns its path.
// Returns empty string if no config file is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads config from the given path, or discovers a config file in the
// working directory if configPath is empty. Returns default config if no
// file is found.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return DefaultConfig(), nil
		}
		configPath = Discover(cwd)
		if configPath == "" {
			logger.Log.Debug("no config file found, using defaults", "dir", cwd)
			return DefaultConfig(), nil
		}
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("loaded config", "path", configPath)
	return cfg, nil
}

// LoadFile reads config from a specific file path. Fields the file leaves
// out keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".toml":
		err = decodeTOML(data, cfg)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}
