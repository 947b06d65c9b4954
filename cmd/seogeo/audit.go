package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/d3ccy/seo-geo/internal/audit"
	"github.com/d3ccy/seo-geo/internal/config"
	"github.com/d3ccy/seo-geo/internal/fetch"
)

var (
	auditStealth bool
	auditVerbose bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Run a GEO/SEO audit against a single site",
	Long:  `Fetch the page, extract meta tags, check robots.txt and sitemap.xml, and print the readiness report.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditStealth, "stealth", false, "Render in a headless browser to pass JavaScript bot challenges")
	auditCmd.Flags().BoolVarP(&auditVerbose, "verbose", "v", false, "Print fetch diagnostics")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	opts := fetch.DefaultOptions()
	opts.Timeout = cfg.FetchTimeout
	opts.Verbose = auditVerbose || cfg.Verbose

	stealthOpts := *opts
	stealthOpts.UseBrowser = true

	svc := audit.NewService(fetch.New(opts), fetch.New(&stealthOpts))

	result, err := svc.Run(cmd.Context(), audit.RunRequest{URL: args[0], Stealth: auditStealth})
	if err != nil {
		return err
	}

	audit.WriteReport(os.Stdout, result)
	return nil
}
