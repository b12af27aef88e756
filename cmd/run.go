package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/app"
	"github.com/abhisek/compass/internal/evaluation"
)

// runApp opens the store, builds the evaluator, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs always go to a file.
	logFile, err := cfg.LogFile()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	client := evaluation.Open(ctx, cfg.LLMConfig(), evaluation.DefaultClientConfig(), eventRepo, log)

	opts := app.Options{
		Evaluator: client,
		EventRepo: eventRepo,
		Logger:    log,
	}
	if err := client.Err(); err != nil {
		opts.Notice = "Evaluation unavailable: " + err.Error()
	}

	log.Info("starting tui", zap.String("model", client.ModelID()))
	return app.Run(opts)
}
