package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"

	"github.com/rowantrollope/pathkit/internal/cli"
	"github.com/rowantrollope/pathkit/internal/cmd"
	"github.com/rowantrollope/pathkit/internal/config"
	"github.com/rowantrollope/pathkit/internal/index"
	"github.com/rowantrollope/pathkit/internal/output"
	"github.com/rowantrollope/pathkit/internal/tree"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()

	// Custom flag set to avoid os.Exit on parse error
	flags := flag.NewFlagSet("pathkit", flag.ContinueOnError)
	flags.SetInterspersed(false) // Stop parsing at first non-flag arg (the command)
	cfg.RegisterFlags(flags)
	showVersion := flags.Bool("version", false, "Show version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	cfg.Args = flags.Args()

	if *showVersion {
		fmt.Printf("pathkit %s\n", version)
		return 0
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if err := tree.ValidateVolume(cfg.Volume); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}

	if !cfg.ShouldColor() {
		color.NoColor = true
	}
	formatter := output.NewFormatter(cfg.JSON, cfg.ShouldColor())
	ctx := context.Background()

	router := cmd.NewRouter(nil, cfg, formatter)
	router.SetLogger(logger)

	// Path algebra runs without a server.
	if len(cfg.Args) > 0 && !router.NeedsRedis(cfg.Args) {
		return execute(ctx, router, formatter, cfg.Args)
	}

	opts, err := cfg.Conn.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot connect to Redis at %s: %s\n", cfg.Conn.Addr(), err)
		return 1
	}
	defer rdb.Close()
	logger.Debug("connected", "addr", cfg.Conn.Addr(), "volume", cfg.Volume)

	client := tree.NewClient(rdb, cfg.Volume)
	client.SetLogger(logger)
	router.Client = client

	if cfg.Index {
		indexer := index.NewIndexer(rdb, cfg.Volume)
		indexer.SetLogger(logger)
		client.SetObserver(indexer)
		router.Indexer = indexer
	}

	// Auto-init volume root
	if err := client.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize volume: %s\n", err)
		return 1
	}

	if len(cfg.Args) > 0 {
		return execute(ctx, router, formatter, cfg.Args)
	}

	repl := cli.NewREPL(router, cfg, formatter)
	if err := repl.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// execute runs a single command given on the command line.
func execute(ctx context.Context, router *cmd.Router, formatter *output.Formatter, args []string) int {
	if err := router.Execute(ctx, quoteArgs(args)); err != nil {
		formatter.Errorf("%s\n", err)
		return 1
	}
	return 0
}

// quoteArgs rebuilds a command line from shell-split arguments so the
// tokenizer sees the same words.
func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == ">" || a == ">>" {
			quoted[i] = a
			continue
		}
		if a == "" || strings.ContainsAny(a, " \t'\"\\>") {
			a = "'" + strings.ReplaceAll(a, "'", `'"'"'`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
