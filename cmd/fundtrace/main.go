// FundTrace — Institutional Holdings History from SEC EDGAR
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seenimoa/fundtrace/api"
	"github.com/seenimoa/fundtrace/internal/config"
	"github.com/seenimoa/fundtrace/internal/edgar"
	"github.com/seenimoa/fundtrace/internal/history"
	"github.com/seenimoa/fundtrace/internal/report"
	"github.com/seenimoa/fundtrace/internal/tracker"
	"github.com/seenimoa/fundtrace/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fundtrace",
	Short: "FundTrace — Institutional Holdings History from SEC EDGAR",
	Long: `FundTrace reconstructs institutional quarterly equity holdings from
SEC EDGAR 13F filings: it crawls each tracked institution's filing
index back through the archived shards, parses the holdings documents
across their format generations, and derives year-over-year ownership
statistics for the tracked tickers.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		cfg.Logging.Apply()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FundTrace %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Crawl Command ---

var crawlCmd = &cobra.Command{
	Use:   "crawl [tickers...]",
	Short: "Crawl institutional holdings history for tracked tickers",
	Long: `Crawl every rostered institution's 13F filing history and write the
holdings, yearly summary, and filing timeline artifacts for each
ticker. With no arguments, all rostered tickers are crawled.

Interruptible: Ctrl-C stops between filings and artifacts already
written remain valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if since, _ := cmd.Flags().GetInt("since"); since > 0 {
			cfg.Crawl.StartYear = since
		}
		tickers := tickerArgs(args)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		trk := tracker.New(cfg, edgar.NewClient(cfg.Edgar))
		if len(tickers) == 0 {
			tickers = trk.Resolver().Tickers()
		}

		fmt.Printf("🏛️  Crawling %d institutions for %s (since %d)\n",
			len(cfg.Roster.Institutions), strings.Join(tickers, ", "), cfg.Crawl.StartYear)

		result, err := trk.Track(ctx, tickers)
		if err != nil {
			return err
		}
		fmt.Printf("   %d holdings from %d filings\n", len(result.Holdings), len(result.Timeline))

		w := report.NewWriter(cfg.Output.Dir)
		endYear := time.Now().Year()
		for _, t := range tickers {
			path, err := w.WriteHoldings(t, result.Holdings)
			if err != nil {
				return err
			}
			fmt.Printf("   📄 %s\n", path)

			summaries := history.Summarize(result.Holdings, t, cfg.Crawl.StartYear, endYear)
			if path, err = w.WriteYearlySummaries(t, summaries); err != nil {
				return err
			}
			fmt.Printf("   📄 %s\n", path)

			if path, err = w.WriteTimeline(t, result.Timeline); err != nil {
				return err
			}
			fmt.Printf("   📄 %s\n", path)
		}
		path, err := w.WriteInstitutionProfiles(history.Profiles(result.Timeline))
		if err != nil {
			return err
		}
		fmt.Printf("   📄 %s\n", path)
		return nil
	},
}

func init() {
	crawlCmd.Flags().Int("since", 0, "override crawl start year")
}

// --- Timeline Command ---

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "List 13F filing timelines without parsing documents",
	Long: `Fetch every rostered institution's filing index and write the filing
timeline and institution analysis artifacts. Much cheaper than a full
crawl since no filing documents are fetched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		trk := tracker.New(cfg, edgar.NewClient(cfg.Edgar))
		fmt.Printf("🏛️  Listing filings for %d institutions (since %d)\n",
			len(cfg.Roster.Institutions), cfg.Crawl.StartYear)

		timeline, err := trk.Timeline(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("   %d filings\n", len(timeline))

		w := report.NewWriter(cfg.Output.Dir)
		path, err := w.WriteTimeline("ALL", timeline)
		if err != nil {
			return err
		}
		fmt.Printf("   📄 %s\n", path)
		path, err = w.WriteInstitutionProfiles(history.Profiles(timeline))
		if err != nil {
			return err
		}
		fmt.Printf("   📄 %s\n", path)
		return nil
	},
}

// --- Watch Command ---

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check the filing feeds for recent 13F filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		cutoff := time.Now().AddDate(0, 0, -days)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := edgar.NewClient(cfg.Edgar)
		fmt.Printf("📡 Checking feeds for filings in the last %d days\n", days)

		total := 0
		for _, inst := range cfg.Roster.Institutions {
			entries, err := client.LatestHoldingsFilings(ctx, inst.CIK)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fmt.Printf("   ⚠️  %s: %v\n", inst.Name, err)
				continue
			}
			for _, e := range entries {
				if e.Updated.Before(cutoff) {
					continue
				}
				fmt.Printf("   🆕 %s %s %s (%s)\n",
					utils.FormatDate(e.Updated), inst.Name, e.AccessionNumber, e.FormType)
				total++
			}
		}
		fmt.Printf("   %d new filings\n", total)
		return nil
	},
}

func init() {
	watchCmd.Flags().Int("days", 30, "how far back to report feed entries")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		trk := tracker.New(cfg, edgar.NewClient(cfg.Edgar))
		srv := api.NewServer(cfg, trk)

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting FundTrace API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("yaml")
		if full {
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  FundTrace — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Println()
		fmt.Println("  Configuration:")
		fmt.Printf("    Archive:       %s (every %s)\n", cfg.Edgar.BaseURL, cfg.Edgar.RequestInterval())
		fmt.Printf("    Institutions:  %d tracked\n", len(cfg.Roster.Institutions))
		fmt.Printf("    Securities:    %d tracked\n", len(cfg.Roster.Securities))
		fmt.Printf("    Crawl window:  %d–present, %d workers\n", cfg.Crawl.StartYear, cfg.Crawl.Workers)
		fmt.Printf("    Output:        %s\n", cfg.Output.Dir)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("yaml", false, "dump the effective configuration as YAML")
}

func tickerArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.ToUpper(strings.TrimSpace(a)); a != "" {
			out = append(out, a)
		}
	}
	return out
}
