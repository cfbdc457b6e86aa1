package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/opentrep/opentrep-go/internal/applog"
	"github.com/opentrep/opentrep-go/internal/config"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "opentrepd",
		Short: "Resolve free-form travel queries against a points-of-reference catalog",
	}

	config.BindFlags(v, root.PersistentFlags())

	root.AddCommand(newIndexCmd(v))
	root.AddCommand(newQueryCmd(v))
	root.AddCommand(newServeCmd(v))
	return root
}

func loadConfig(v *viper.Viper) (config.Config, error) {
	return config.Load(v)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return applog.New(applog.Config{Debug: cfg.Debug})
}
