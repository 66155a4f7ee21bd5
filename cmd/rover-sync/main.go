package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kelsos/rover-sync/internal/auth"
	"github.com/kelsos/rover-sync/internal/config"
	"github.com/kelsos/rover-sync/internal/flatten"
	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/optimization"
	"github.com/kelsos/rover-sync/internal/portfolio"
	"github.com/kelsos/rover-sync/internal/rover"
	"github.com/kelsos/rover-sync/internal/search"
	"github.com/kelsos/rover-sync/internal/storage"
	"github.com/kelsos/rover-sync/internal/table"
	"github.com/kelsos/rover-sync/internal/utils"
)

// session is everything a command needs once configuration and credentials are loaded
type session struct {
	cfg     *config.Config
	clients *rover.Clients
}

func loadConfig(envFile string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if envFile != "" {
		cfg.DotenvPath = envFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadSession(envFile string) (*session, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}

	header, err := auth.LoadHeaders(cfg.DotenvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return &session{cfg: cfg, clients: rover.NewClients(cfg, header)}, nil
}

func readQuery(path, inline string) (map[string]any, error) {
	raw := []byte(inline)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read query file: %w", err)
		}
		raw = data
	}
	if len(raw) == 0 {
		return map[string]any{"match_all": map[string]any{}}, nil
	}

	var query map[string]any
	if err := json.Unmarshal(raw, &query); err != nil {
		return nil, fmt.Errorf("query is not a JSON object: %w", err)
	}
	return query, nil
}

func printTable(t table.Table, asCSV bool) error {
	if asCSV {
		return t.WriteCSV(os.Stdout)
	}
	return t.Render(os.Stdout)
}

func main() {
	utils.LoadEnvironment()
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		envFile  string
		logLevel string
		asCSV    bool
	)

	rootCmd := &cobra.Command{
		Use:   "rover-sync",
		Short: "A CLI tool for running Rover portfolio optimizations",
		Long: `rover-sync searches the Rover asset universe, builds optimizer requests
and prints optimizer, analyzer and market data responses as tables.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logger.SetLevel(logLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "Env file holding credentials (default: $ROVER_DOTENV_PATH or .env)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&asCSV, "csv", false, "Print tables as CSV instead of boxes")

	// Optimize command
	var (
		queryFile string
		queryJSON string
		opts      = optimization.DefaultOptions()
		save      bool
	)
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize a cash portfolio over the assets matched by a search",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadSession(envFile)
			if err != nil {
				return err
			}

			query, err := readQuery(queryFile, queryJSON)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("index") {
				opts.Search.Index = rt.cfg.SearchIndex
			}
			if !cmd.Flags().Changed("size") {
				opts.Search.Size = rt.cfg.SearchSize
			}

			basic, err := optimization.NewFromEnv(rt.cfg.DotenvPath, rt.clients.Optimizer, rt.clients.Assets, rt.clients.Analyzer)
			if err != nil {
				return err
			}

			summary, err := basic.RunOptimizationOnSearch(ctx, query, opts)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			if save {
				path, err := storage.SaveSnapshot(rt.cfg.DataDir, query, summary)
				if err != nil {
					return err
				}
				logger.Info("Summary saved to %s", path)
			}

			return printTable(summary, asCSV)
		},
	}
	optimizeCmd.Flags().StringVarP(&queryFile, "query", "q", "", "Path to a JSON file with the search query")
	optimizeCmd.Flags().StringVar(&queryJSON, "query-json", "", "Search query as inline JSON")
	optimizeCmd.Flags().Float64Var(&opts.MaxInstrumentConcentration, "max-concentration", optimization.DefaultMaxInstrumentConcentration, "Maximum weight of a single instrument")
	optimizeCmd.Flags().Float64Var(&opts.MinTradeSize, "min-trade-size", optimization.DefaultMinTradeSize, "Minimum trade size as a weight")
	optimizeCmd.Flags().Int64Var(&opts.StartingCash, "cash", optimization.DefaultStartingCash, "Starting cash of the portfolio")
	optimizeCmd.Flags().IntVar(&opts.Search.Size, "size", optimization.DefaultSearchSize, "Number of search hits to whitelist")
	optimizeCmd.Flags().StringVar(&opts.Search.Index, "index", optimization.DefaultIndex, "Search index holding the asset universe")
	optimizeCmd.Flags().BoolVar(&save, "save", false, "Save the summary under the data directory")

	// Search command
	var searchOpts optimization.SearchOptions
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Run a search and list the asset ids it would whitelist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			query, err := readQuery(queryFile, queryJSON)
			if err != nil {
				return err
			}

			if searchOpts.Index == "" {
				searchOpts.Index = cfg.SearchIndex
			}
			if searchOpts.Size == 0 {
				searchOpts.Size = cfg.SearchSize
			}

			searcher, err := search.NewFromEnv(cfg.DotenvPath)
			if err != nil {
				return err
			}

			response, err := optimization.New(nil, nil, nil, searcher).RunSearch(ctx, query, searchOpts)
			if err != nil {
				return err
			}

			ids, err := portfolio.SearchHitIDs(response)
			if err != nil {
				return err
			}

			hits := table.New(flatten.ColAssetID)
			for _, id := range ids {
				hits.Append(table.Record{flatten.ColAssetID: id})
			}
			return printTable(hits, asCSV)
		},
	}
	searchCmd.Flags().StringVarP(&queryFile, "query", "q", "", "Path to a JSON file with the search query")
	searchCmd.Flags().StringVar(&queryJSON, "query-json", "", "Search query as inline JSON")
	searchCmd.Flags().IntVar(&searchOpts.Size, "size", 0, "Number of hits to return (default: $ROVER_SEARCH_SIZE)")
	searchCmd.Flags().StringVar(&searchOpts.Index, "index", "", "Search index (default: $ROVER_SEARCH_INDEX)")

	// Offers command
	offersCmd := &cobra.Command{
		Use:   "offers CUSIP...",
		Short: "List live market offers for the given CUSIPs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadSession(envFile)
			if err != nil {
				return err
			}

			offers, err := rt.clients.MarketData.GetLiveOffers(ctx, args)
			if err != nil {
				return err
			}
			return printTable(offers, asCSV)
		},
	}

	// Assets command
	assetsCmd := &cobra.Command{
		Use:   "assets CUSIP...",
		Short: "Show universe details for the given CUSIPs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadSession(envFile)
			if err != nil {
				return err
			}

			response, err := rt.clients.Assets.GetAssetsFromCusips(ctx, args)
			if err != nil {
				return err
			}
			return printTable(flatten.AssetsToTable(response.Assets), asCSV)
		},
	}

	// Mappings command
	mappingsCmd := &cobra.Command{
		Use:   "mappings CUSIP...",
		Short: "Map CUSIPs to Rover asset ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadSession(envFile)
			if err != nil {
				return err
			}

			response, err := rt.clients.Mappings.GetCusipAssetIDMappings(ctx, args)
			if err != nil {
				return err
			}
			return printTable(flatten.MappingsToTable(response.Mappings), asCSV)
		},
	}

	// Credentials command
	credentialsCmd := &cobra.Command{
		Use:   "credentials",
		Short: "Check that the search and API credentials can be loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			es, creds, _, err := auth.LoadCredentials(cfg.DotenvPath)
			if err != nil {
				return err
			}

			logger.Info("Search credentials loaded for user %s", es.Username)
			logger.Info("API token loaded (type %s, scope %q, expires in %s)", creds.TokenType, creds.Scope, creds.ExpiresIn)
			return nil
		},
	}

	// Show command
	showCmd := &cobra.Command{
		Use:   "show SNAPSHOT",
		Short: "Print a summary saved with optimize --save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := storage.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			return printTable(snapshot.Summary, asCSV)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(offersCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(mappingsCmd)
	rootCmd.AddCommand(credentialsCmd)
	rootCmd.AddCommand(showCmd)

	// Execute the root command
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
