package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gama646/quizdash/internal/bank"
	"github.com/Gama646/quizdash/internal/config"
	"github.com/Gama646/quizdash/internal/logging"
	"github.com/Gama646/quizdash/internal/store"
)

// env bundles what every command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	bank   *bank.Bank
	store  store.Store
}

// setup loads the configuration, builds the logger and question bank, and
// opens the results store. Callers must Close the returned env.
func setup(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger = logging.Nop()
	}
	logger = logger.With(zap.String("command", cmd.Name()))
	if cfg.File != "" {
		logger.Debug("config loaded", zap.String("file", cfg.File))
	}

	b := bank.Default()
	if cfg.Questions != "" {
		b, err = bank.LoadFile(cfg.Questions)
		if err != nil {
			logger.Error("load question bank failed", zap.String("path", cfg.Questions), zap.Error(err))
			_ = logger.Sync()
			return nil, fmt.Errorf("load questions: %w", err)
		}
	}

	opts := cfg.StoreOptions()
	opts.Logger = logger
	st, err := store.Open(cmd.Context(), opts)
	if err != nil {
		logger.Error("open store failed", zap.Error(err))
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &env{cfg: cfg, logger: logger, bank: b, store: st}, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store failed", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// loadLog reads every attempt, logging failures.
func (e *env) loadLog(cmd *cobra.Command) (store.Log, error) {
	log, err := e.store.LoadAll(cmd.Context())
	if err != nil {
		e.logger.Error("load results failed", zap.Error(err))
		return nil, fmt.Errorf("load results: %w", err)
	}
	return log, nil
}
