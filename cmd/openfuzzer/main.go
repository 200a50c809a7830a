package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/payloads"
	"github.com/PentesterFlow/OpenFuzzer/internal/progress"
	"github.com/PentesterFlow/OpenFuzzer/internal/report"
	"github.com/PentesterFlow/OpenFuzzer/internal/shutdown"
	"github.com/PentesterFlow/OpenFuzzer/pkg/fuzzer"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	verbose    bool

	// Scan flags
	maxDepth   int
	maxPages   int
	timeout    int
	rateLimit  float64
	burst      int
	probeDelay int
	reportPath string
	storePath  string

	// Auth flags
	loginURL string
	username string
	password string

	// Browser flags
	showBrowser bool
	userAgent   string

	// Display flags
	showProgress bool
	noProgress   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "openfuzzer",
		Short: "OpenFuzzer - Web Application Form Fuzzer",
		Long: `OpenFuzzer - A browser-driven web application vulnerability scanner.

Crawls a target in a headless browser, discovers HTML forms, injects
XSS, SQL injection, SSRF and CSRF payloads into every field, and
classifies the responses into findings.`,
		Version: version,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [target]",
		Short: "Scan a target URL",
		Long:  "Crawl a target URL, fuzz every discovered form, and report findings.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	payloadsCmd := &cobra.Command{
		Use:   "payloads",
		Short: "List the payload catalog",
		Long:  "Show the payload categories and per-field-type payload counts.",
		RunE:  runPayloads,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Scan flags
	scanCmd.Flags().IntVarP(&maxDepth, "max-depth", "d", 3, "Maximum crawl depth")
	scanCmd.Flags().IntVar(&maxPages, "max-pages", 50, "Maximum number of pages to crawl")
	scanCmd.Flags().IntVarP(&timeout, "timeout", "t", 15, "Probe timeout in seconds")
	scanCmd.Flags().Float64VarP(&rateLimit, "rate-limit", "r", 10, "Probes per second")
	scanCmd.Flags().IntVar(&burst, "burst", 5, "Probe burst size")
	scanCmd.Flags().IntVar(&probeDelay, "probe-delay", 0, "Minimum delay between probes in milliseconds")
	scanCmd.Flags().StringVarP(&reportPath, "output", "o", "", "Report file (.json, .md or .html)")
	scanCmd.Flags().StringVar(&storePath, "store", "", "Findings database file")

	// Auth flags
	scanCmd.Flags().StringVar(&loginURL, "login-url", "", "Login URL for form authentication")
	scanCmd.Flags().StringVarP(&username, "username", "u", "", "Username for form authentication")
	scanCmd.Flags().StringVarP(&password, "password", "p", "", "Password for form authentication")

	// Browser flags
	scanCmd.Flags().BoolVar(&showBrowser, "show-browser", false, "Run the browser with a visible window")
	scanCmd.Flags().StringVar(&userAgent, "user-agent", "", "Override the browser user agent")

	// Display flags
	scanCmd.Flags().BoolVar(&showProgress, "progress", true, "Show the live progress line")
	scanCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress line (use verbose logging instead)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(payloadsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command, target string) (*fuzzer.Config, error) {
	config := fuzzer.DefaultConfig()

	if configFile != "" {
		loaded, err := fuzzer.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		config = loaded
	}

	config.Target = target

	// Command-line flags take precedence over the config file.
	if cmd.Flags().Changed("max-depth") {
		config.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("max-pages") {
		config.MaxPages = maxPages
	}
	if cmd.Flags().Changed("timeout") {
		config.Timeout = time.Duration(timeout) * time.Second
		config.Browser.Timeout = config.Timeout
	}
	if cmd.Flags().Changed("rate-limit") {
		config.RateLimit.RequestsPerSecond = rateLimit
	}
	if cmd.Flags().Changed("burst") {
		config.RateLimit.Burst = burst
	}
	if cmd.Flags().Changed("probe-delay") {
		config.RateLimit.ProbeDelay = time.Duration(probeDelay) * time.Millisecond
	}
	if cmd.Flags().Changed("show-browser") {
		config.Browser.Headless = !showBrowser
	}
	if cmd.Flags().Changed("user-agent") {
		config.Browser.UserAgent = userAgent
	}
	if reportPath != "" {
		config.ReportPath = reportPath
	}
	if storePath != "" {
		config.StorePath = storePath
	}

	if loginURL != "" {
		config.Auth.LoginURL = loginURL
		config.Auth.Username = username
		config.Auth.Password = password
	}

	config.Verbose = verbose
	config.Progress = showProgress && !noProgress && !verbose

	return config, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	session, err := fuzzer.NewSession(fuzzer.WithConfig(config))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	handler := shutdown.New(30 * time.Second)

	var display *progress.Display
	if config.Progress {
		display = progress.New()
		display.Attach(session.Events())
	} else {
		printBanner(config)
	}

	result, err := session.Run(handler.Context())

	if display != nil {
		display.PrintSummary(os.Stdout)
	} else if result != nil {
		printSummary(result)
	}

	if result != nil {
		if werr := session.WriteReport(result); werr != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", werr)
		} else if config.ReportPath != "" {
			fmt.Printf("Report written to %s\n", config.ReportPath)
		}
	}

	if err != nil && handler.Context().Err() == nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

func runPayloads(cmd *cobra.Command, args []string) error {
	catalog := payloads.NewCatalog()

	fmt.Println("Payload categories:")
	for _, cat := range catalog.Categories() {
		fmt.Printf("  %s\n", cat)
	}
	fmt.Println()

	fmt.Println("Payloads per field type:")
	for _, ft := range browser.AllFieldTypes {
		count := len(catalog.PayloadsForField(browser.Field{Name: "field", Type: ft}))
		fmt.Printf("  %-10s %d\n", ft, count)
	}

	return nil
}

func printBanner(config *fuzzer.Config) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                       OpenFuzzer v1.0                        ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Target:     %s\n", config.Target)
	fmt.Printf("Max Depth:  %d\n", config.MaxDepth)
	fmt.Printf("Max Pages:  %d\n", config.MaxPages)
	fmt.Printf("Rate Limit: %.0f probes/s\n", config.RateLimit.RequestsPerSecond)
	fmt.Println()
	fmt.Println("Starting scan...")
	fmt.Println()
}

func printSummary(result *report.Result) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        Scan Summary                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Duration:       %v\n", result.Duration().Round(time.Second))
	fmt.Printf("Pages Crawled:  %d\n", result.PagesCount)
	fmt.Printf("Forms Fuzzed:   %d\n", result.FormsFuzzed)
	fmt.Printf("Findings:       %d\n", len(result.Findings))
	fmt.Printf("Errors:         %d\n", result.Errors)
	fmt.Println()

	if len(result.Findings) == 0 {
		return
	}

	bySeverity := result.BySeverity()
	order := []analyzer.Severity{analyzer.SeverityHigh, analyzer.SeverityMedium, analyzer.SeverityLow}
	for _, severity := range order {
		findings := bySeverity[severity]
		if len(findings) == 0 {
			continue
		}
		fmt.Printf("%s severity:\n", severity)
		count := 10
		if len(findings) < count {
			count = len(findings)
		}
		for i := 0; i < count; i++ {
			f := findings[i]
			fmt.Printf("  [%s] %s\n", f.Type, f.URL)
		}
		if len(findings) > 10 {
			fmt.Printf("  ... and %d more\n", len(findings)-10)
		}
		fmt.Println()
	}
}
