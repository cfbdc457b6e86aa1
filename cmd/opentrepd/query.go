package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opentrep/opentrep-go/internal/resultenc"
	"github.com/opentrep/opentrep-go/pkg/opentrep"
)

func newQueryCmd(v *viper.Viper) *cobra.Command {
	var binary bool

	cmd := &cobra.Command{
		Use:   "query [phrase...]",
		Short: "Resolve a free-form phrase against the built index",
		Args:  cobra.MinimumNArgs(1),
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

			r, err := opentrep.Open(cfg.IndexDir, opentrep.Options{
				Workers:  cfg.Workers,
				Deadline: cfg.Deadline,
				Alpha:    cfg.ScoreAlpha,
				Epsilon:  cfg.ScoreEpsilon,
				Logger:   logger,
			})
			if err != nil {
				return fmt.Errorf("open index: %w", err)
			}
			defer r.Close()

			bundle, err := r.Interpret(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				data, _ := resultenc.MarshalJSONError(err)
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			if binary {
				data, err := opentrep.MarshalBinary(bundle)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			data, err := opentrep.MarshalJSON(bundle)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&binary, "binary", false, "emit the schema-versioned binary envelope instead of JSON")
	return cmd
}
