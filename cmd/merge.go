package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/peer-eval-cli/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [input_folder] [output_file]",
	Short: "Combine submission CSVs without printing the analysis report",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, outputFile := resolvePaths(args)
		out := newReporter(cmd)

		if _, err := merge.New(cfg.Merge, out, runLogger("merge")).Merge(inputDir, outputFile); err != nil {
			out.Linef("")
			out.Linef("Merge failed!")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
