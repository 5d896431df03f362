package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "advisory-console",
	Short: "Back-office console for security advisories",
	Long: `advisory-console serves the operator console for authoring, reviewing
and dispatching security advisories against the back-office API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, previewEmailCmd, clientsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
