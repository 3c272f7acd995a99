// Package yaml loads the wikihtml configuration file.
package yaml

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fwojciec/wikihtml"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG config home.
const AppName = "wikihtml"

// ConfigFile is the configuration file name.
const ConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DefaultConfigPath returns $XDG_CONFIG_HOME/wikihtml/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// LoadConfig reads and validates the configuration file at path.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// whether that is an error based on whether the path was given explicitly.
func LoadConfig(path string) (*wikihtml.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg wikihtml.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, wikihtml.Errorf(wikihtml.EINVALID, "invalid config file %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
