package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/quest-go/config"
	"github.com/wippyai/quest-go/engine"
	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/fault"
	"github.com/wippyai/quest-go/quest"
)

var (
	cfgFile string

	// flags holds the flag layer and QUESTGO_CONFIG.
	flags = viper.New()

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "questgo",
	Short: "Quantum register simulator with recoverable engine faults",
	Long: `questgo runs circuits on the pure-Go simulation engine through the quest
bridge. Invalid engine calls surface as errors instead of terminating the
process, and each goroutine sees only its own faults.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (console, json)")
	pf.String("seeds", "", "comma-separated measurement seeds")
	pf.String("policy", "", "open registers at close (release, reject)")
	pf.Bool("metrics", false, "serve Prometheus metrics while the command runs")
	pf.String("metrics-addr", "", "metrics listen address")

	bind := map[string]string{
		"log.level":                 "log-level",
		"log.format":                "log-format",
		"engine.seeds":              "seeds",
		"engine.outstanding_policy": "policy",
		"metrics.enabled":           "metrics",
		"metrics.address":           "metrics-addr",
	}
	for key, name := range bind {
		if err := flags.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
	flags.SetEnvPrefix("QUESTGO")
	_ = flags.BindEnv("config")
}

// setup loads the configuration and installs the loggers. It runs before
// every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := c.Log.Build()
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "build logger")
	}
	cfg = c
	logger = l
	engine.SetLogger(l.Named("engine"))
	fault.SetLogger(l.Named("fault"))
	quest.SetLogger(l.Named("quest"))
	return nil
}

// loadConfig layers file, environment and changed flags, in that order.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = flags.GetString("config")
	}
	c, err := config.LoadWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}

	if flags.IsSet("log.level") {
		c.Log.Level = flags.GetString("log.level")
	}
	if flags.IsSet("log.format") {
		c.Log.Format = flags.GetString("log.format")
	}
	if flags.IsSet("engine.outstanding_policy") {
		c.Engine.OutstandingPolicy = flags.GetString("engine.outstanding_policy")
	}
	if flags.IsSet("engine.seeds") {
		seeds, err := config.ParseSeeds(flags.GetString("engine.seeds"))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "--seeds")
		}
		c.Engine.Seeds = seeds
	}
	if flags.IsSet("metrics.enabled") {
		c.Metrics.Enabled = flags.GetBool("metrics.enabled")
	}
	if flags.IsSet("metrics.address") {
		c.Metrics.Address = flags.GetString("metrics.address")
		c.Metrics.Enabled = true
	}

	if err := config.Validate(c); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "validate flags")
	}
	return c, nil
}
