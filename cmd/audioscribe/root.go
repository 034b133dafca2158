package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
	"github.com/nguyentantai21042004/audioscribe/internal/dirstate"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
)

const defaultConfigFile = "config.yaml"

var (
	cfgFile string
	verbose bool

	appCfg *config.Config
	appLog logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "audioscribe",
	Short: "Transcribe a folder of audio files into Markdown and SRT",
	Long: `audioscribe uploads every audio file of a folder to an OpenAI-compatible
speech-to-text endpoint and writes <name>.md and <name>.srt for each one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func setup() error {
	if err := config.LoadDotEnv(config.DefaultDotEnvPaths()...); err != nil {
		return err
	}

	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(defaultConfigFile)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	appCfg = cfg
	appLog = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	return nil
}

// folders resolves the target and output folders: flag, then config, then
// the folders remembered from the previous run. The output folder falls back
// to the target folder.
func folders(targetFlag, outputFlag string) (dirstate.State, error) {
	remembered, err := dirstate.Load(appCfg.Paths.State)
	if err != nil {
		return dirstate.State{}, err
	}

	s := dirstate.State{
		TargetDir: dirstate.Resolve(targetFlag, dirstate.Resolve(appCfg.Paths.Target, remembered.TargetDir)),
		OutputDir: dirstate.Resolve(outputFlag, dirstate.Resolve(appCfg.Paths.Output, remembered.OutputDir)),
	}
	if s.TargetDir == "" {
		return s, errors.New("no target folder: pass --target or set paths.target")
	}
	if s.OutputDir == "" {
		s.OutputDir = s.TargetDir
	}
	return s, nil
}
