// Package main provides the entry point for the SEO/GEO audit service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seogeo",
	Short: "SEO/GEO site audit service",
	Long:  "seogeo audits client websites for AI-search readiness: meta tags, structured data, robots.txt AI-crawler access, sitemap presence and load time, rolled into a 0-100 score.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
