package config

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/logging"
)

// Load reads, parses and validates the configuration document at path.
// Any defect - unreadable file, malformed YAML, duplicate key, dangling
// reference - is fatal here, before a single side effect has run.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read config file %s", path).WithDetail("path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("repos", cfg.Store.Len()).
		Int("categories", len(cfg.CategoryNames)).
		Int("globalLinks", len(cfg.Links)).
		Msg("Configuration loaded")
	return cfg, nil
}

// Parse builds a validated configuration from raw document bytes
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Keep structured errors raised inside custom unmarshalers
		var gfErr *errors.GitfarmError
		if stderrors.As(err, &gfErr) {
			return nil, gfErr
		}
		return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed config document")
	}
	return fromDocument(&doc)
}

// Save writes the configuration back to path in the normalized document
// form, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg.toDocument())
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot serialize config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite,
			"cannot create config directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite,
			"cannot write config file %s", path).WithDetail("path", path)
	}
	return nil
}
