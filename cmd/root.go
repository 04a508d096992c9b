package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitpulse",
	Short: "GitPulse - Repository statistics tool",
	Long: `GitPulse clones a GitHub repository into memory and derives its
statistics client-side: contributors and bus factor, file churn and
coupling, commit-message analysis, size histograms and growth curves.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
