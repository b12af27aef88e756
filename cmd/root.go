package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/config"
	"github.com/abhisek/compass/internal/logger"
	"github.com/abhisek/compass/internal/store"
)

const appName = "compass"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Structured professional competency interview",
		Long: "Compass walks through 20 interview questions, has a language model score\n" +
			"five professional competencies from the answers, and summarizes the result.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is compass.yaml in current directory)")
	flags.String("db", "", "path to SQLite database file (overrides COMPASS_DB)")
	flags.String("provider", "", "LLM provider: openai, anthropic, gemini, openrouter or mock")
	flags.String("model", "", "model ID to send evaluations to")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.String("log-file", "", "log file (the TUI logs to compass.log in the data directory by default)")

	bind("db", "db")
	bind("llm.provider", "provider")
	bind("llm.model", "model")
	bind("log.debug", "debug")
	bind("log.json", "json")
	bind("log.file", "log-file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func bind(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// loadConfig resolves flags, environment, .env and the config file.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return config.Load(viper.GetViper(), cfgFile)
}

// openStore opens the event store at the configured path.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newLogger builds the logger for commands that own stdout. output
// overrides the configured log file when non-empty.
func newLogger(cfg *config.Config, output string) (*zap.Logger, error) {
	if output == "" {
		output = cfg.Log.File
	}
	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug, output)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
