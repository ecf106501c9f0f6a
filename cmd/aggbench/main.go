package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vecbase/aggtable/pkg/util"
)

func init() {
	cobra.OnInitialize(setupLogger)
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "cmd/aggbench/config.toml", "path to aggbench's toml config file")
	initRunCmd()
	initBenchCmd()
}

var cfgPath string
var aggCfg util.Config

var info = "aggbench"
var RootCmd = &cobra.Command{
	Use:          "aggbench",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use aggbench --help or -h")
	},
}

func setupLogger() {
	cfg, err := util.LoadConfig(cfgPath)
	if err != nil {
		fmt.Println("aggbench: failed to load config, falling back to defaults:", err)
	}
	aggCfg = cfg

	zcfg := zap.NewDevelopmentConfig()
	level := zap.InfoLevel
	_ = level.Set(aggCfg.Debug.LogLevel)
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err == nil {
		util.SetLogger(logger)
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
