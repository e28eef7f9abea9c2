// Package config provides the run configuration schema and loader for
// duelset dataset generation.
package config

import (
	"log/slog"

	"github.com/nathoo/duelset/engine"
	"github.com/nathoo/duelset/engine/label"
	"github.com/nathoo/duelset/engine/stats"
)

// EnvPostgresDSN names the environment variable consulted when
// output.postgres_dsn is empty.
const EnvPostgresDSN = "DUELSET_POSTGRES_DSN"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l to a slog level. Unknown values map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format selects the dataset writer.
type Format string

const (
	FormatJSONL    Format = "jsonl"
	FormatCSV      Format = "csv"
	FormatSQLite   Format = "sqlite"
	FormatPostgres Format = "postgres"
)

// IsValid reports whether f is a recognised output format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSONL, FormatCSV, FormatSQLite, FormatPostgres:
		return true
	}
	return false
}

// IsFile reports whether f writes a local file that a manifest can digest.
func (f Format) IsFile() bool {
	return f == FormatJSONL || f == FormatCSV || f == FormatSQLite
}

// Config is the root configuration for one generation run.
type Config struct {
	// Roster is the path to a .csv file, a .lua file or a directory of .lua files.
	Roster   string         `yaml:"roster"`
	Output   OutputConfig   `yaml:"output"`
	Sampling SamplingConfig `yaml:"sampling"`
	Policy   PolicyConfig   `yaml:"policy"`
	LogLevel LogLevel       `yaml:"log_level"`
}

// OutputConfig controls where and how the dataset is written.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format Format `yaml:"format"`

	// PostgresDSN is required for the postgres format. Falls back to
	// $DUELSET_POSTGRES_DSN when empty.
	PostgresDSN string `yaml:"postgres_dsn"`

	// Table names the destination table for sqlite and postgres.
	Table string `yaml:"table"`

	// Manifest writes <path>.manifest.json next to file outputs.
	Manifest bool `yaml:"manifest"`
}

// SamplingConfig mirrors engine.Params plus the worker count.
type SamplingConfig struct {
	Pairs     int   `yaml:"pairs"`
	LevelLow  int   `yaml:"level_low"`
	LevelHigh int   `yaml:"level_high"`
	Seed      int64 `yaml:"seed"`

	// Workers bounds the featurize/label pool. 0 uses runtime.NumCPU().
	Workers int `yaml:"workers"`
}

// PolicyConfig holds every tunable constant of the labeler.
type PolicyConfig struct {
	AttackWeight    float64 `yaml:"attack_weight"`
	SpAttackWeight  float64 `yaml:"sp_attack_weight"`
	HPWeight        float64 `yaml:"hp_weight"`
	DefenseWeight   float64 `yaml:"defense_weight"`
	SpDefenseWeight float64 `yaml:"sp_defense_weight"`
	LevelPivot      float64 `yaml:"level_pivot"`
	SpeedBonus      float64 `yaml:"speed_bonus"`
	MinBulk         float64 `yaml:"min_bulk"`
}

// Default returns the stock configuration.
func Default() *Config {
	p := engine.DefaultParams()
	pol := label.DefaultPolicy()
	return &Config{
		Roster: "data/pokemon.csv",
		Output: OutputConfig{
			Path:     "model/train_pairs.jsonl",
			Format:   FormatJSONL,
			Table:    "train_pairs",
			Manifest: true,
		},
		Sampling: SamplingConfig{
			Pairs:     p.Count,
			LevelLow:  p.LevelLow,
			LevelHigh: p.LevelHigh,
			Seed:      p.Seed,
		},
		Policy: PolicyConfig{
			AttackWeight:    pol.Weights.Attack,
			SpAttackWeight:  pol.Weights.SpAttack,
			HPWeight:        pol.Weights.HP,
			DefenseWeight:   pol.Weights.Defense,
			SpDefenseWeight: pol.Weights.SpDefense,
			LevelPivot:      pol.LevelPivot,
			SpeedBonus:      pol.SpeedBonus,
			MinBulk:         pol.MinBulk,
		},
		LogLevel: LogInfo,
	}
}

// Params converts the sampling section to engine parameters.
func (s SamplingConfig) Params() engine.Params {
	return engine.Params{
		Count:     s.Pairs,
		LevelLow:  s.LevelLow,
		LevelHigh: s.LevelHigh,
		Seed:      s.Seed,
	}
}

// Labeler converts the policy section to a label.Policy.
func (p PolicyConfig) Labeler() label.Policy {
	return label.Policy{
		Weights: stats.Weights{
			Attack:    p.AttackWeight,
			SpAttack:  p.SpAttackWeight,
			HP:        p.HPWeight,
			Defense:   p.DefenseWeight,
			SpDefense: p.SpDefenseWeight,
		},
		LevelPivot: p.LevelPivot,
		SpeedBonus: p.SpeedBonus,
		MinBulk:    p.MinBulk,
	}
}
