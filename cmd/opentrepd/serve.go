package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/opentrep/opentrep-go/internal/resultenc"
	"github.com/opentrep/opentrep-go/pkg/opentrep"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve query resolution over HTTP",
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

			mux := http.NewServeMux()
			mux.HandleFunc("/query", queryHandler(r, logger))
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			logger.Info("listening", zap.String("addr", addr))
			return http.ListenAndServe(addr, mux)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	return cmd
}

func queryHandler(r *opentrep.Resolver, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		phrase := req.URL.Query().Get("q")
		if phrase == "" {
			http.Error(w, "missing query parameter q", http.StatusBadRequest)
			return
		}

		bundle, err := r.Interpret(req.Context(), phrase)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			logger.Warn("resolution failed", zap.String("phrase", phrase), zap.Error(err))
			data, _ := resultenc.MarshalJSONError(err)
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write(data)
			return
		}

		data, err := resultenc.MarshalJSON(bundle)
		if err != nil {
			logger.Warn("encode response failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Write(data)
	}
}
