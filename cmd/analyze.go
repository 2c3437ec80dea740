package main

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [output_file]",
	Short: "Print the analysis report for an existing combined file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Merge.OutputFile
		if len(args) == 1 {
			path = args[0]
		}

		_, err := newAnalyzer(newReporter(cmd), runLogger("analyze")).Analyze(path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
