package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/duelset/export"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// Fields absent from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	cfg, err := Decode(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads the YAML configuration file at path over the defaults without
// consulting the environment or validating. Callers that layer overrides on
// top must call [ApplyEnv] and [Validate] themselves.
func Decode(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over the defaults, applies
// environment fallbacks and validates the result. An empty document yields
// the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv fills unset secrets from the environment.
func ApplyEnv(cfg *Config) {
	if cfg.Output.PostgresDSN == "" {
		cfg.Output.PostgresDSN = os.Getenv(EnvPostgresDSN)
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Roster == "" {
		errs = append(errs, errors.New("roster is required"))
	}

	// Output
	out := cfg.Output
	if !out.Format.IsValid() {
		errs = append(errs, fmt.Errorf("output.format %q is invalid; valid values: jsonl, csv, sqlite, postgres", out.Format))
	}
	if out.Format.IsFile() && out.Path == "" {
		errs = append(errs, fmt.Errorf("output.path is required for format %q", out.Format))
	}
	if out.Format == FormatPostgres && out.PostgresDSN == "" {
		errs = append(errs, fmt.Errorf("output.postgres_dsn (or $%s) is required for format %q", EnvPostgresDSN, out.Format))
	}
	if (out.Format == FormatSQLite || out.Format == FormatPostgres) && !export.ValidTable(out.Table) {
		errs = append(errs, fmt.Errorf("output.table %q must be a plain SQL identifier", out.Table))
	}
	if out.Format.IsFile() && out.Path != "" {
		if ext := strings.TrimPrefix(filepath.Ext(out.Path), "."); ext != "" && ext != string(out.Format) && !(out.Format == FormatSQLite && (ext == "db" || ext == "sqlite3")) {
			slog.Warn("output.path extension does not match output.format", "path", out.Path, "format", out.Format)
		}
	}
	if out.Manifest && out.Format == FormatPostgres {
		slog.Warn("output.manifest is ignored for the postgres format")
	}

	// Sampling
	s := cfg.Sampling
	if s.Pairs < 0 {
		errs = append(errs, fmt.Errorf("sampling.pairs %d must not be negative", s.Pairs))
	}
	if s.LevelLow < 1 {
		errs = append(errs, fmt.Errorf("sampling.level_low %d must be at least 1", s.LevelLow))
	}
	if s.LevelLow > s.LevelHigh {
		errs = append(errs, fmt.Errorf("sampling.level_low %d is above sampling.level_high %d", s.LevelLow, s.LevelHigh))
	}
	if s.Workers < 0 {
		errs = append(errs, fmt.Errorf("sampling.workers %d must not be negative", s.Workers))
	}

	// Policy
	p := cfg.Policy
	weights := []struct {
		name string
		v    float64
	}{
		{"attack_weight", p.AttackWeight},
		{"sp_attack_weight", p.SpAttackWeight},
		{"hp_weight", p.HPWeight},
		{"defense_weight", p.DefenseWeight},
		{"sp_defense_weight", p.SpDefenseWeight},
	}
	for _, w := range weights {
		if w.v < 0 {
			errs = append(errs, fmt.Errorf("policy.%s %.2f must not be negative", w.name, w.v))
		}
	}
	if p.LevelPivot <= 0 {
		errs = append(errs, fmt.Errorf("policy.level_pivot %.2f must be positive", p.LevelPivot))
	}
	if p.SpeedBonus <= 0 {
		errs = append(errs, fmt.Errorf("policy.speed_bonus %.2f must be positive", p.SpeedBonus))
	}
	if p.MinBulk <= 0 {
		errs = append(errs, fmt.Errorf("policy.min_bulk %.2f must be positive", p.MinBulk))
	}

	return errors.Join(errs...)
}
