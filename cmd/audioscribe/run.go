package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audioscribe/internal/dirstate"
	"github.com/nguyentantai21042004/audioscribe/internal/discovery"
	"github.com/nguyentantai21042004/audioscribe/internal/media"
	"github.com/nguyentantai21042004/audioscribe/internal/processor"
	"github.com/nguyentantai21042004/audioscribe/internal/stt"
	"github.com/nguyentantai21042004/audioscribe/pkg/executor"
)

var (
	targetDir string
	outputDir string
	withDocx  bool
	withProbe bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Transcribe every audio file in the target folder",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

func init() {
	for _, c := range []*cobra.Command{runCmd, watchCmd} {
		c.Flags().StringVarP(&targetDir, "target", "t", "", "folder with audio files (default: last used)")
		c.Flags().StringVarP(&outputDir, "output", "o", "", "folder for transcripts (default: last used, then target)")
		c.Flags().BoolVar(&withDocx, "docx", false, "also write <name>.docx")
		c.Flags().BoolVar(&withProbe, "probe", false, "log ffprobe details for each input")
	}
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := notifyContext()
	defer stop()

	proc, dirs, err := newProcessor(ctx)
	if err != nil {
		return err
	}

	matcher := discovery.Matcher{
		Extensions:      appCfg.Discovery.Extensions,
		CaseInsensitive: appCfg.Discovery.CaseInsensitive,
	}
	files, err := matcher.Files(dirs.TargetDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		appLog.Info(ctx, "No audio files (%v) found in %s", matcher.Extensions, dirs.TargetDir)
		return nil
	}

	return proc.Run(ctx, files)
}

// newProcessor validates the credential, resolves and remembers the folders
// and wires a Processor that reports through the logger.
func newProcessor(ctx context.Context) (processor.Processor, dirstate.State, error) {
	if err := appCfg.RequireAPIKey(); err != nil {
		return nil, dirstate.State{}, err
	}

	dirs, err := folders(targetDir, outputDir)
	if err != nil {
		return nil, dirs, err
	}
	if err := os.MkdirAll(dirs.OutputDir, 0755); err != nil {
		return nil, dirs, fmt.Errorf("create output dir: %w", err)
	}
	if err := dirstate.Save(appCfg.Paths.State, dirs); err != nil {
		appLog.Warn(ctx, "Could not remember folders: %v", err)
	}

	appCfg.Paths.Target = dirs.TargetDir
	appCfg.Paths.Output = dirs.OutputDir
	if withDocx {
		appCfg.Output.Docx = true
	}
	if withProbe {
		appCfg.Media.Probe = true
	}

	transcriber, err := stt.New(appCfg.API)
	if err != nil {
		return nil, dirs, err
	}

	var prober media.Prober
	if appCfg.Media.Probe {
		prober = media.New(executor.New(), appCfg.Media.FFprobePath)
	}

	appLog.Info(ctx, "Target: %s", dirs.TargetDir)
	appLog.Info(ctx, "Output: %s", dirs.OutputDir)

	reporter := logReporter{ctx: ctx, log: appLog}
	return processor.New(appCfg, transcriber, prober, appLog, reporter), dirs, nil
}
