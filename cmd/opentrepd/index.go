package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/config"
	"github.com/opentrep/opentrep-go/internal/pagerank"
	"github.com/opentrep/opentrep-go/pkg/opentrep"
)

func newIndexCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{Use: "index", Short: "Manage the full-text index"}
	cmd.AddCommand(newIndexBuildCmd(v))
	return cmd
}

func newIndexBuildCmd(v *viper.Viper) *cobra.Command {
	var bestEffort bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a fresh index from the configured catalog and PageRank files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ranks, err := loadPageRank(cfg, logger)
			if err != nil {
				return fmt.Errorf("load pagerank: %w", err)
			}

			mode := catalog.StrictMode
			if bestEffort {
				mode = catalog.BestEffortMode
			}
			records := catalog.Open(cfg.CatalogPath, mode).Records()
			if bestEffort {
				records = catalog.SkipFormatErrors(records, func(fe *catalog.FormatError) {
					logger.Warn("skipping malformed catalog line",
						zap.Int("line", fe.Line), zap.Int("column", fe.Column), zap.String("reason", fe.Message))
				})
			}
			pors, err := catalog.Collect(records)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			catalog.ResolveServingCities(pors)

			if err := opentrep.BuildIndex(cfg.IndexDir, catalog.Seq(pors), ranks); err != nil {
				return fmt.Errorf("build index: %w", err)
			}

			logger.Info("index built", zap.String("dir", cfg.IndexDir), zap.Int("records", len(pors)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "continue past malformed catalog lines instead of stopping")
	return cmd
}

// loadPageRank picks the weight source from cfg — a Redis hash when
// redis-addr is set, the local file otherwise — and fronts the
// normalized table with an LRU cache for the per-record lookups the
// build issues. Returns nil when neither source is configured, in
// which case every POR gets the floor weight.
func loadPageRank(cfg config.Config, logger *zap.Logger) (pagerank.Weights, error) {
	var source pagerank.Source
	switch {
	case cfg.RedisAddr != "":
		source = pagerank.RedisSource{Client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})}
	case cfg.PageRankPath != "":
		source = pagerank.FileSource{Path: cfg.PageRankPath, Logger: logger}
	default:
		return nil, nil
	}

	raw, err := source.Load()
	if err != nil {
		return nil, err
	}
	return pagerank.NewCachedTable(pagerank.Build(raw), 0)
}
