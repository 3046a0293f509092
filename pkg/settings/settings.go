// Package settings loads gitfarm's app settings (presentation and commit
// defaults, as opposed to the repo manifest) from layered sources: embedded
// defaults, an optional user gitfarm.toml, and GITFARM_* environment
// overrides, in increasing precedence.
package settings

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	gferrors "github.com/arthur-debert/gitfarm/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// Settings holds run-wide defaults that CLI flags can still override
type Settings struct {
	// Quiet suppresses per-item progress output (never failure summaries)
	Quiet bool `koanf:"quiet"`

	// Emoji controls the success/failure markers in progress output
	Emoji bool `koanf:"emoji"`

	// DefaultMessage is the Quick commit-strategy message
	DefaultMessage string `koanf:"default_message"`

	// Editor is the command used by the Edit commit strategy; when empty,
	// VISUAL/EDITOR decide.
	Editor string `koanf:"editor"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load reads the layered settings. A missing user file is fine; a malformed
// one is a configuration defect.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, gferrors.Wrap(err, gferrors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. User settings file, if present
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, gferrors.Wrapf(err, gferrors.ErrConfigParse,
					"failed to load settings from %s", path).WithDetail("path", path)
			}
		}
	}

	// 3. Environment overrides: GITFARM_QUIET, GITFARM_DEFAULT_MESSAGE, ...
	if err := k.Load(env.Provider("GITFARM_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GITFARM_"))
	}), nil); err != nil {
		return nil, gferrors.Wrap(err, gferrors.ErrConfigLoad, "failed to load settings from env")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, gferrors.Wrap(err, gferrors.ErrConfigParse, "invalid settings")
	}
	return &s, nil
}
