package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/peer-eval-cli/internal/config"
)

var cfg *config.Config

var (
	rosterPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "peer-eval [input_folder] [output_file]",
	Short: "Combine student peer-evaluation CSV files and report on them",
	Long: `Combines every per-student evaluation CSV in input_folder into one master
file sorted by evaluator and timestamp, then prints an analysis report
(rating statistics, rating distribution, self-evaluations, participation).

input_folder defaults to ./submissions and is created if missing.
output_file defaults to combined_evaluations.csv; a .xlsx name writes a
spreadsheet instead.

Examples:
  peer-eval
  peer-eval ./submissions combined_evaluations.csv
  peer-eval ./submissions combined.xlsx --roster students.csv
  peer-eval merge ./submissions combined_evaluations.csv
  peer-eval analyze combined_evaluations.csv`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if cmd.Flags().Changed("roster") {
			cfg.Analyze.Roster = rosterPath
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runCombine,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rosterPath, "roster", "", "class roster CSV (id,name) for submission-rate reporting")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress the printed report")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
