package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by [ApplyEnv].
const (
	EnvConfigFile = "HARDLINKER_CONFIG"
	EnvSourceDir  = "HARDLINKER_SOURCE_DIR"
	EnvTargetDir  = "HARDLINKER_TARGET_DIR"
	EnvDebug      = "HARDLINKER_DEBUG"
	EnvDryRun     = "HARDLINKER_DRY_RUN"
	EnvLogFile    = "HARDLINKER_LOG"
	EnvMaxDepth   = "HARDLINKER_DEPTH"
	EnvWorkers    = "HARDLINKER_WORKERS"
)

// LoadFile decodes the JSON config file at path into cfg, overriding only
// the keys present in the file. A missing file is an error only when
// required is set; malformed JSON and unknown keys always are.
func LoadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment, if one exists. Variables already set are not overwritten.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with the HARDLINKER_* environment variables that
// are set and non-empty.
func ApplyEnv(cfg *Config) error {
	if v := env(EnvSourceDir); v != "" {
		cfg.SourceDir = v
	}
	if v := env(EnvTargetDir); v != "" {
		cfg.TargetDir = v
	}
	if v := env(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if err := envBool(EnvDebug, &cfg.Debug); err != nil {
		return err
	}
	if err := envBool(EnvDryRun, &cfg.DryRun); err != nil {
		return err
	}
	if err := envInt(EnvMaxDepth, &cfg.MaxDepth); err != nil {
		return err
	}
	return envInt(EnvWorkers, &cfg.Workers)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string, dst *int) error {
	raw := env(key)
	if raw == "" {
		return nil
	}
	n, err := parseInt(raw, key)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	raw := env(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean (got %q)", key, raw)
	}
	*dst = v
	return nil
}
