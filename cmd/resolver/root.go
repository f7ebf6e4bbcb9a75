package main

import (
	"fmt"

	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "resolver",
	Short: "Contest standings resolver",
	Long: `Replays a contest with frozen standings and reveals the hidden
submissions one by one during an awards ceremony.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to config file")
}

// setup loads the configuration and installs the global logger. The
// returned function flushes the logger.
func setup() (*config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return cfg, func() { logger.Sync() }, nil
}

func newLogger(cfg config.Logger) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Level == "debug" {
		zcfg = zap.NewDevelopmentConfig()
	} else if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}
	if cfg.File != "" {
		zcfg.OutputPaths = append(zcfg.OutputPaths, cfg.File)
	}
	return zcfg.Build()
}
