package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/server"
	"github.com/abhisek/compass/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve interview sessions over an HTTP JSON API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg, "")
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eventRepo := st.EventRepo()
		client := evaluation.Open(ctx, cfg.LLMConfig(), evaluation.DefaultClientConfig(), eventRepo, log)
		if err := client.Err(); err != nil {
			log.Warn("evaluation requests will fail with not_configured", zap.Error(err))
		}

		reg := session.NewRegistry(func(id string) *session.Session {
			return session.New(client,
				session.WithID(id),
				session.WithEventRepo(eventRepo),
				session.WithLogger(log),
			)
		})

		log.Info("starting compass server",
			zap.String("version", version),
			zap.String("addr", cfg.Server.Addr),
			zap.String("model", client.ModelID()),
		)
		return server.New(cfg.Server, reg, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	if err := viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
}
