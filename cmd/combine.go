package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/peer-eval-cli/internal/analyze"
	"github.com/sells-group/peer-eval-cli/internal/merge"
	"github.com/sells-group/peer-eval-cli/internal/report"
)

// runCombine merges the submissions and, when that succeeds, analyzes the
// combined file.
func runCombine(cmd *cobra.Command, args []string) error {
	inputDir, outputFile := resolvePaths(args)
	out := newReporter(cmd)
	log := runLogger("combine")

	out.Linef("Cooperative Evaluation CSV Combiner")
	out.Linef("%s", report.Rule(40))
	out.Linef("Input folder: %s", inputDir)
	out.Linef("Output file: %s", outputFile)
	out.Linef("")

	if _, err := merge.New(cfg.Merge, out, log).Merge(inputDir, outputFile); err != nil {
		out.Linef("")
		out.Linef("Process failed!")
		return err
	}

	// The merge already succeeded; an analysis failure is reported but does
	// not fail the run.
	if _, err := newAnalyzer(out, log).Analyze(outputFile); err != nil {
		out.Linef("Analysis failed: %v", err)
		log.Error("analysis failed", zap.String("file", outputFile), zap.Error(err))
	}

	out.Linef("")
	out.Linef("Process completed successfully!")
	out.Linef("Combined file: %s", outputFile)
	out.Linef("You can now analyze the data in Excel or similar tools")
	return nil
}

// resolvePaths applies positional arguments over the configured defaults.
func resolvePaths(args []string) (inputDir, outputFile string) {
	inputDir, outputFile = cfg.Merge.InputDir, cfg.Merge.OutputFile
	if len(args) >= 1 {
		inputDir = args[0]
	}
	if len(args) >= 2 {
		outputFile = args[1]
	}
	return inputDir, outputFile
}

func newReporter(cmd *cobra.Command) report.Reporter {
	if quiet {
		return report.Nop{}
	}
	return report.NewConsole(cmd.OutOrStdout())
}

func newAnalyzer(out report.Reporter, log *zap.Logger) *analyze.Analyzer {
	opts := []analyze.Option{analyze.WithLogger(log)}
	if cfg.Analyze.Roster != "" {
		opts = append(opts, analyze.WithRoster(cfg.Analyze.Roster))
	}
	return analyze.New(out, opts...)
}

// runLogger tags every log line of one invocation with a fresh run ID.
func runLogger(command string) *zap.Logger {
	return zap.L().With(
		zap.String("command", command),
		zap.String("run_id", uuid.NewString()),
	)
}
