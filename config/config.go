// Package config loads the persisted defaults for the options spec.md's
// external CLI collaborator exposes: output format, the base address
// used for instruction addressing, and verbose tracing. Per-invocation
// values (inputFileName, outputFileName) are never persisted here;
// command-line flags always take precedence over whatever this file
// contains.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the on-disk default values for rv5i-asm.
type Config struct {
	Format        string `toml:"format"`          // binary, bin, hex, or hexadecimal
	StartOfMemory int64  `toml:"start_of_memory"` // non-negative, multiple of 4
	Verbose       bool   `toml:"verbose"`
}

// BinarySuffix and HexSuffix are appended to the input filename when
// outputFileName is not supplied, matching the original tool's on-disk
// artifact convention.
const (
	BinarySuffix = ".bin.riscv5i"
	HexSuffix    = ".hex.riscv5i"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:        "binary",
		StartOfMemory: 0,
		Verbose:       false,
	}
}

// DeriveOutputFileName computes the default output path from the input
// path and format when outputFileName is not explicitly supplied.
func DeriveOutputFileName(inputFileName, format string) string {
	switch format {
	case "hex", "hexadecimal":
		return inputFileName + HexSuffix
	default:
		return inputFileName + BinarySuffix
	}
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv5i-asm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv5i-asm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the given file, falling back to
// DefaultConfig when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the given file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
