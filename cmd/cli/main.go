package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "gaapledger-cli",
		Short:         "GAAP ledger CLI tool",
		Long:          `A command line interface for the GAAP ledger API and for replaying scenario files locally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	newClient := func() *apiClient {
		return newAPIClient(baseURL, timeout)
	}

	rootCmd.AddCommand(
		booksCmd(newClient),
		reportCmd(newClient),
		ledgerCmd(newClient),
		scenarioCmd(),
	)
	return rootCmd
}
