// Package config loads engine configuration from a JSON file, validates
// it against the embedded schema, and applies environment overrides.
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
	"github.com/contextweave/contextweave/utils"
)

type Config struct {
	Network  model.NetworkConfig `json:"network"`
	Versions map[string]string   `json:"versions,omitempty"` // relative path -> version tag
	Log      LogConfig           `json:"log"`
	Tracing  *TracingConfig      `json:"tracing,omitempty"`
}

type LogConfig struct {
	Level string `json:"level"`
}

type TracingConfig struct {
	Exporter    string `json:"exporter"` // "stdout" or "none"
	ServiceName string `json:"service_name,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Network: model.DefaultNetworkConfig(),
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads and validates a JSON config file, then applies
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		applyEnv(cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := validateSchema(data); err != nil {
		return nil, utils.Errorf("config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Network = cfg.Network.WithDefaults()
	applyEnv(cfg)
	return cfg, nil
}

func validateSchema(data []byte) error {
	schema, err := jsonschema.CompileString("weave.schema.json", schemaJSON)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}

// applyEnv overrides limits from the environment. Invalid values are
// ignored with a warning rather than failing startup.
func applyEnv(cfg *Config) {
	if v, ok := envInt(constants.EnvMaxDepth); ok {
		cfg.Network.MaxDepth = v
	}
	if v, ok := envInt(constants.EnvMaxNodeSize); ok {
		cfg.Network.MaxNodeSize = v
	}
	if v, ok := envInt(constants.EnvMaxNetworkSize); ok {
		cfg.Network.MaxNetworkSize = v
	}
	if raw := os.Getenv(constants.EnvBestEffort); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			utils.Warn("ignoring invalid %s=%q", constants.EnvBestEffort, raw)
		} else {
			cfg.Network.BestEffort = b
		}
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		utils.Warn("ignoring invalid %s=%q", key, raw)
		return 0, false
	}
	return v, true
}
