// Package main is the Kotae CLI entry point.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/index"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/internal/watcher"
	"github.com/hyperjump/kotae/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "build":
		runBuild()
	case "ask":
		runAsk()
	case "watch":
		runWatch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runBuild() {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("config loaded", zap.String("config_path", resolvedConfigPath))

	builder := indexer.NewBuilder(&cfg.Documents, &cfg.Index, indexer.WithLogger(logger))
	_, report, err := builder.BuildAndSave(context.Background(), cfg.Documents.Dir, cfg.Index.Dir)
	if err != nil {
		if errors.Is(err, index.ErrCorpusEmpty) {
			fmt.Printf("No usable chunks found in %s; add documents first.\n", cfg.Documents.Dir)
		} else {
			fmt.Printf("Build failed: %v\n", err)
		}
		os.Exit(1)
	}
	printReport(report)
}

func printReport(report *indexer.Report) {
	for _, o := range report.Outcomes {
		switch o.Status {
		case indexer.StatusErrored:
			fmt.Printf("  %s: error: %v\n", o.Path, o.Err)
		case indexer.StatusSkipped:
			fmt.Printf("  %s: skipped (no content)\n", o.Path)
		default:
			fmt.Printf("  %s: %d chunks\n", o.Path, o.Chunks)
		}
	}
	fmt.Printf("Index built: %d chunks total\n", report.ChunkCount)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	topK := fs.Int("k", 0, "number of chunks to retrieve (0 = defaults)")
	verbose := fs.Bool("verbose", false, "print the ranked results behind the answer")
	_ = fs.Parse(os.Args[2:])
	question := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(question) == "" {
		fmt.Println("Usage: kotae ask [flags] <question>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	ix, err := index.Load(ctx, cfg.Index.Dir)
	if err != nil {
		if errors.Is(err, index.ErrIndexMissing) {
			fmt.Printf("No index found in %s; run \"kotae build\" first.\n", cfg.Index.Dir)
		} else {
			fmt.Printf("Failed to load index: %v\n", err)
		}
		os.Exit(1)
	}

	holder := search.NewHolder()
	holder.Swap(ix)
	engine := search.NewEngine(holder, &cfg.Search)
	answer, err := engine.Answer(ctx, question, *topK)
	if err != nil {
		fmt.Printf("Query failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(answer.Answer)
	if *verbose {
		fmt.Println("\nRanked results:")
		for i, r := range answer.Results {
			fmt.Printf("  %d. [%.4f] %s %s: %s\n", i+1, r.Score, r.DocName, r.Section, utils.Truncate(r.Text, 80))
		}
	}
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("config loaded", zap.String("config_path", resolvedConfigPath))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	holder := search.NewHolder()
	engine := search.NewEngine(holder, &cfg.Search, search.WithLogger(logger))
	builder := indexer.NewBuilder(&cfg.Documents, &cfg.Index, indexer.WithLogger(logger))

	rebuild := func() {
		ix, report, err := builder.BuildAndSave(ctx, cfg.Documents.Dir, cfg.Index.Dir)
		if err != nil {
			logger.Warn("rebuild failed; previous index stays in service", zap.Error(err))
			return
		}
		holder.Swap(ix)
		logger.Info("index swapped", zap.Int("chunks", report.ChunkCount))
	}

	// Load existing artifacts if present; otherwise build in the background
	// and serve "not ready" until the first build lands.
	if index.Exists(cfg.Index.Dir) {
		ix, err := index.Load(ctx, cfg.Index.Dir)
		if err != nil {
			logger.Warn("existing index unusable, rebuilding", zap.Error(err))
			go rebuild()
		} else {
			holder.Swap(ix)
			logger.Info("index loaded", zap.Int("chunks", ix.Len()))
		}
	} else {
		logger.Info("no index artifacts yet, building")
		go rebuild()
	}

	w := watcher.New(cfg.Documents.Dir, cfg.Documents.Extensions, rebuild,
		watcher.WithLogger(logger),
		watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond))
	if err := w.Start(ctx); err != nil {
		fmt.Printf("Failed to start watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		os.Exit(0)
	}()

	fmt.Println("Watching for changes. Type a question and press enter (Ctrl-C to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		answer, err := engine.Answer(ctx, question, 0)
		if err != nil {
			if errors.Is(err, search.ErrNotInitialized) {
				fmt.Println("Index not ready yet; try again in a moment.")
			} else {
				fmt.Printf("Query failed: %v\n", err)
			}
			continue
		}
		fmt.Println(answer.Answer)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Documents dir: %s\n", cfg.Documents.Dir)
	fmt.Printf("Index dir:     %s\n", cfg.Index.Dir)
	if !index.Exists(cfg.Index.Dir) {
		fmt.Println("Index:         missing (run \"kotae build\")")
		return
	}
	store, err := storage.NewSQLiteStore(filepath.Join(cfg.Index.Dir, index.ChunksFile))
	if err != nil {
		fmt.Printf("Index:         unreadable: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	n, err := store.CountChunks(context.Background())
	if err != nil {
		fmt.Printf("Index:         unreadable: %v\n", err)
		os.Exit(1)
	}
	size, _ := storage.DiskUsageBytes(cfg.Index.Dir)
	fmt.Printf("Index:         %d chunks, %d bytes on disk\n", n, size)
}

func printUsage() {
	fmt.Println(`Kotae - document question answering

Usage:
  kotae build  [-config path] [-debug]          Build the index from the documents directory
  kotae ask    [-config path] [-k n] [-verbose] <question>
  kotae watch  [-config path] [-debug]          Rebuild on changes and answer from stdin
  kotae status [-config path]                   Show index artifact status
  kotae version
  kotae help`)
}
