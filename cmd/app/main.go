package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/zyho/litkeep/internal"
	"github.com/zyho/litkeep/internal/console"
	"github.com/zyho/litkeep/internal/index"
	"github.com/zyho/litkeep/internal/litservice"
	"github.com/zyho/litkeep/internal/mcpserver"
	"github.com/zyho/litkeep/internal/store"
	pkgconfig "github.com/zyho/litkeep/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// newService opens the library and wires a service without the search
// index. Used by the modes that work directly against the JSON file.
func newService(cfg *internal.Config, logger *slog.Logger) (*litservice.Service, error) {
	topics, err := cfg.TopicSet()
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	st, err := store.Open(cfg.Library.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return litservice.New(st, topics, cfg.Library.DocumentPath, cfg.Library.BibTeXPath, nil, logger), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func runConsole(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := newService(cfg, quietLogger())
	if err != nil {
		return err
	}
	return console.New(os.Stdin, os.Stdout, svc).Run(ctx)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Stdout carries the MCP protocol, so logs go to stderr only.
	svc, err := newService(cfg, quietLogger())
	if err != nil {
		return err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()
	if err := index.Sync(db, svc.Store(), quietLogger()); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}
	svc = litservice.New(svc.Store(), svc.Topics(), cfg.Library.DocumentPath, cfg.Library.BibTeXPath, db, quietLogger())

	return mcpserver.New(svc).ServeStdio()
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := newService(cfg, quietLogger())
	if err != nil {
		return err
	}
	if err := svc.Rebuild(ctx); err != nil {
		return err
	}
	fmt.Printf("Document regenerated: %s\n", cfg.Library.DocumentPath)
	if cfg.Library.BibTeXPath != "" {
		fmt.Printf("Bibliography regenerated: %s\n", cfg.Library.BibTeXPath)
	}
	return nil
}

func runSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("usage: search <query>")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Library.DataPath)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()
	if err := index.Sync(db, st, quietLogger()); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}

	results, err := db.Search(query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("[topic %s] %s (%d) %s\n", r.Topic, r.Title, r.Year, r.Authors)
		if r.Snippet != "" {
			fmt.Printf("    %s\n", r.Snippet)
		}
	}
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "litkeep",
		Usage:  "Literature review manager with topic-grouped entries, generated bibliography, and full-text search",
		Action: runConsole,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the REST API server with live document regeneration",
				Action: runServe,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio for LLM integration",
				Action: runMCP,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "render",
				Usage:  "Regenerate the review document and bibliography from the library",
				Action: runRender,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:      "search",
				Usage:     "Search recorded papers via the SQLite index",
				ArgsUsage: "<query>",
				Action:    runSearch,
				Flags: []cli.Flag{
					configFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 20,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
