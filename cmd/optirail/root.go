package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/internal/cli"
	"github.com/aretw0/optirail/internal/config"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "optirail",
	Short: "optirail traces paraxial rays through an optical rail",
	Long: `optirail composes ABCD ray-transfer matrices for an ordered rail of optical
elements (free space, lenses, mirrors, prisms, gratings) and propagates rays
through it. Heights are in mm, angles in mrad.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("catalog", "", "YAML file extending the component library")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every trace at debug level")
}

// loadConfig reads --config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("catalog") {
		cfg.CatalogPath, _ = cmd.Flags().GetString("catalog")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// setup builds the logger and engine shared by most commands.
func setup(cmd *cobra.Command, hooks ...domain.LifecycleHooks) (config.Config, *slog.Logger, *optirail.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger := cli.CreateLogger(cfg.LogLevel, cfg.LogJSON)
	debug, _ := cmd.Flags().GetBool("debug")

	engine, err := cli.NewEngine(cfg, logger, debug, hooks...)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, logger, engine, nil
}
