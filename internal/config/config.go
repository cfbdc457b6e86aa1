// Package config binds the resolver's runtime configuration from
// flags, environment variables, and an optional config file via Viper.
package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable the CLI and the resolver need at runtime.
type Config struct {
	CatalogPath  string        `mapstructure:"catalog_path"`
	PageRankPath string        `mapstructure:"pagerank_path"`
	IndexDir     string        `mapstructure:"index_dir"`
	RedisAddr    string        `mapstructure:"redis_addr"`
	ScoreAlpha   float64       `mapstructure:"score_alpha"`
	ScoreEpsilon float64       `mapstructure:"score_epsilon"`
	Workers      int           `mapstructure:"workers"`
	Deadline     time.Duration `mapstructure:"deadline"`
	Debug        bool          `mapstructure:"debug"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		IndexDir:     "./opentrep.idx",
		ScoreAlpha:   1.0,
		ScoreEpsilon: 1e-6,
		Workers:      4,
		Deadline:     2 * time.Second,
	}
}

// BindFlags registers every Config field as a pflag on flags, with
// defaults taken from Defaults, then binds them into v so an explicitly
// set flag wins over an OPENTREP_-prefixed environment variable, which
// wins over the flag default. No config file is read.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	d := Defaults()

	flags.String("catalog-path", "", "path to the POR catalog file (csv, optionally .gz/.bz2)")
	flags.String("pagerank-path", "", "path to the PageRank weight file")
	flags.String("index-dir", d.IndexDir, "directory holding the built full-text index")
	flags.String("redis-addr", "", "Redis address for the PageRank source, if used instead of a file")
	flags.Float64("score-alpha", d.ScoreAlpha, "relevance exponent in the match-score formula")
	flags.Float64("score-epsilon", d.ScoreEpsilon, "score assigned to an unmatched partition group")
	flags.Int("workers", d.Workers, "maximum concurrent per-group matcher calls")
	flags.Duration("deadline", d.Deadline, "per-query resolution deadline")
	flags.Bool("debug", false, "enable debug logging")

	// Bind each flag under its underscored name so the keys line up with
	// the mapstructure tags on Config and with OPENTREP_* env names.
	flags.VisitAll(func(f *pflag.Flag) {
		v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	v.SetEnvPrefix("OPENTREP")
	v.AutomaticEnv()
}

// Load reads v into a Config.
func Load(v *viper.Viper) (Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
