package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
)

var tablesPath string

var rootCmd = &cobra.Command{
	Use:   "fitctl",
	Short: "fitctl estimates calories and prints weekly fitness reports",
	Long:  "fitctl runs the calorie estimators against the built-in or a YAML table file and renders the weekly report straight from the database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tablesPath, "tables", os.Getenv("TABLES_FILE"), "Path to a YAML calorie table file")
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(reportCmd)
}

func loadEstimator() (*calories.Estimator, error) {
	tables, err := calories.LoadTables(tablesPath)
	if err != nil {
		return nil, err
	}
	return calories.New(tables), nil
}
