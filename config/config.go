// Package config loads CLI and depot settings from a TOML file, the same
// default-then-write-if-absent pattern noisetorch-NoiseTorch uses for its
// own config.toml.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cesiumgo/terrain/depot"
)

// Config holds the settings cesiumterrain reads at startup.
type Config struct {
	// InactiveAssetSizeLimitBytes bounds the shared asset depot's
	// deferred-deletion queue (§6).
	InactiveAssetSizeLimitBytes int64

	// TileSourceDir is a default directory for .terrain files. It is
	// stored in and read back from the config file; no cesiumterrain
	// subcommand reads it.
	TileSourceDir string

	// WorkerPoolSize is a tile-concurrency setting. It is stored in and
	// read back from the config file; cesiumterrain's subcommands process
	// tiles one at a time and do not read it.
	WorkerPoolSize int

	// DecodedTileCacheEntries bounds the depot-stats subcommand's LRU of
	// recently served tile paths (github.com/hashicorp/golang-lru),
	// separate from the depot.
	DecodedTileCacheEntries int
}

const fileName = "cesiumterrain.toml"

// Default returns the configuration used when no config file exists yet.
func Default() *Config {
	return &Config{
		InactiveAssetSizeLimitBytes: depot.DefaultInactiveAssetSizeLimitBytes,
		TileSourceDir:               ".",
		WorkerPoolSize:              4,
		DecodedTileCacheEntries:     128,
	}
}

// Dir resolves the configuration directory, honoring XDG_CONFIG_HOME the
// way noisetorch-NoiseTorch's configDir does.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "cesiumterrain")
}

// EnsureInitialized writes a default config file if none exists yet,
// returning the path used.
func EnsureInitialized() (string, error) {

	dir := Dir()
	ok, err := exists(dir)
	if err != nil {
		return "", err
	}
	if !ok {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, fileName)
	ok, err = exists(path)
	if err != nil {
		return "", err
	}
	if !ok {
		if err := Write(path, Default()); err != nil {
			return "", err
		}
	}
	return path, nil
}

// Read loads a Config from path.
func Read(path string) (*Config, error) {
	conf := Config{}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Write encodes conf as TOML and writes it to path.
func Write(path string, conf *Config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return err
	}
	return os.WriteFile(path, buffer.Bytes(), 0644)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			return dir
		}
	}
	return fallback
}
