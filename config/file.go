package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format, use .json, .yaml or .yml")

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
}

// Read loads and validates the config at path. The format is chosen by file extension and
// ${VAR} references are expanded from the environment before decoding.
func Read(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}
	cfg, err := decode(f, data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", path)
	}
	return cfg, nil
}

func decode(f format, data []byte) (*Config, error) {
	var cfg Config
	switch f {
	case formatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Write validates cfg and writes it to path in the format chosen by file extension.
func Write(path string, cfg *Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "refusing to write invalid config")
	}
	data, err := encode(f, cfg)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "cannot write config")
}

func encode(f format, cfg *Config) ([]byte, error) {
	if f == formatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "cannot encode config")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "cannot encode config")
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode config")
	}
	return append(data, '\n'), nil
}

// Marshal encodes cfg in the format named by ext, which is a file extension such as ".yaml".
func Marshal(cfg *Config, ext string) ([]byte, error) {
	f, err := formatOf("config" + ext)
	if err != nil {
		return nil, err
	}
	return encode(f, cfg)
}

// Reset overwrites path with the default config.
func Reset(path string) error {
	return Write(path, Default())
}
