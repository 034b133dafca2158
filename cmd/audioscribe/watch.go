package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audioscribe/internal/discovery"
	"github.com/nguyentantai21042004/audioscribe/internal/watcher"
)

var processExisting bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Transcribe audio files as they appear in the target folder",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&processExisting, "process-existing", false, "transcribe files already in the folder before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	if processExisting {
		files, err := matcher.Files(dirs.TargetDir)
		if err != nil {
			return err
		}
		if err := proc.Run(ctx, files); err != nil {
			return err
		}
	}

	// each new file is its own batch, so one failure does not stop watching
	handler := func(ctx context.Context, path string) error {
		return proc.Run(ctx, []string{path})
	}

	w, err := watcher.New(dirs.TargetDir, matcher, handler, appLog)
	if err != nil {
		return err
	}
	defer w.Stop()

	appLog.Info(ctx, "Press Ctrl+C to stop")
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
