package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audioscribe/internal/dirstate"
	"github.com/nguyentantai21042004/audioscribe/internal/summarizer"
)

var (
	summaryInput string
	summaryDest  string
	summaryDocx  bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize transcripts with Gemini into <name>.summary.md",
	Args:  cobra.NoArgs,
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summaryInput, "input", "i", "", "folder with <name>.md transcripts (default: last output folder)")
	summarizeCmd.Flags().StringVarP(&summaryDest, "dest", "d", "", "folder for summaries (default: input folder)")
	summarizeCmd.Flags().BoolVar(&summaryDocx, "docx", false, "also write <name>.summary.docx")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx, stop := notifyContext()
	defer stop()

	if err := appCfg.RequireGemini(); err != nil {
		return err
	}

	input := summaryInput
	if input == "" {
		remembered, err := dirstate.Load(appCfg.Paths.State)
		if err != nil {
			return err
		}
		input = dirstate.Resolve(appCfg.Paths.Output, remembered.OutputDir)
	}
	if input == "" {
		return fmt.Errorf("no transcript folder: pass --input")
	}
	dest := dirstate.Resolve(summaryDest, input)

	if summaryDocx {
		appCfg.Output.Docx = true
	}

	s, err := summarizer.New(appCfg, appLog)
	if err != nil {
		return err
	}

	stats, err := s.SummarizeAll(ctx, input, dest)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d transcript(s) could not be summarized", stats.Failed)
	}
	return nil
}
