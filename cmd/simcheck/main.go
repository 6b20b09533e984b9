// Package main is the simcheck CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/simcheck/internal/analyzer"
	"github.com/hyperjump/simcheck/internal/cli"
	"github.com/hyperjump/simcheck/internal/config"
	"github.com/hyperjump/simcheck/internal/extract"
	"github.com/hyperjump/simcheck/internal/models"
	"github.com/hyperjump/simcheck/internal/server"
	"github.com/hyperjump/simcheck/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/simcheck/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory so that running from a project dir picks up
// the project's config. Returns the config and the path actually loaded.
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
	// A missing .env is fine; SIMCHECK_* may come from the real environment.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		os.Exit(runAnalyze(os.Args[2:], os.Stdout, os.Stderr))
	case "config":
		os.Exit(runConfig(os.Args[2:], os.Stdout, os.Stderr))
	case "version", "--version", "-v":
		fmt.Printf("simcheck version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.Int("max_documents", cfg.Analysis.MaxDocuments),
		zap.Float64("default_threshold", cfg.Analysis.DefaultThresholdOrDefault()),
	)

	srv := server.NewServer(
		analyzer.NewFromConfig(&cfg.Analysis, logger),
		extract.NewExtractor(),
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// argsReorder moves any flags (and their values) that appear after the file list
// to the front so that flag.Parse() sees them. The flag package stops at the first
// non-flag argument, so "simcheck analyze a.txt b.txt -threshold 0.5" would otherwise
// treat "-threshold" as a file.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// runAnalyze runs one analysis over local files and returns the process exit code.
func runAnalyze(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	threshold := fs.Float64("threshold", math.NaN(), "minimum sentence similarity in [0, 1] (default from config)")
	format := fs.String("format", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: simcheck analyze [flags] <file> <file> [file...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argsReorder(args)); err != nil {
		return 2
	}

	outFormat, err := cli.ParseOutputFormat(*format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	t := *threshold
	if math.IsNaN(t) {
		t = cfg.Analysis.DefaultThresholdOrDefault()
	}

	docs, err := readDocuments(extract.NewExtractor(), fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	res, err := analyzer.NewFromConfig(&cfg.Analysis, logger).Analyze(ctx, &models.AnalysisRequest{
		Documents: docs,
		Threshold: t,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Analysis failed: %v\n", err)
		if models.IsValidationError(err) {
			return 2
		}
		return 1
	}
	if err := cli.WriteAnalysisResult(stdout, res, outFormat); err != nil {
		fmt.Fprintf(stderr, "Output failed: %v\n", err)
		return 1
	}
	return 0
}

// runConfig handles "config init", which writes a config file holding every default.
// An existing file is left alone unless -force is given.
func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 || args[0] != "init" {
		fmt.Fprintln(stderr, "Usage: simcheck config init [-config path] [-force]")
		return 2
	}
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "config.yaml", "config file to write")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if _, err := os.Stat(*path); err == nil && !*force {
		fmt.Fprintf(stderr, "%s already exists; use -force to overwrite\n", *path)
		return 1
	}
	if err := config.Save(*path, config.Default()); err != nil {
		fmt.Fprintf(stderr, "Failed to write config: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote default config to %s\n", *path)
	return 0
}

// readDocuments extracts every path into a document named after the file's base name.
func readDocuments(ex *extract.Extractor, paths []string) ([]models.DocumentInput, error) {
	docs := make([]models.DocumentInput, 0, len(paths))
	for _, p := range paths {
		text, err := ex.Extract(p)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", p, err)
		}
		docs = append(docs, models.DocumentInput{Name: filepath.Base(p), Text: text})
	}
	return docs, nil
}

func printUsage() {
	fmt.Println(`simcheck - Sentence-level document similarity analysis

Usage:
  simcheck server [flags]                 Start the HTTP server
  simcheck analyze [flags] <file>...      Compare two or more local documents
  simcheck config init [flags]            Write a config file with every default
  simcheck version                        Show version
  simcheck help                           Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/simcheck/config.yaml)
  --debug            Enable debug logging

Analyze Flags:
  --config string      Config file path
  --threshold float    Minimum sentence similarity in [0, 1] (default from config, or 0.3)
  --format string      Output format: text or json (default: text)
  --debug              Enable debug logging

Config Init Flags:
  --config string      File to write (default: config.yaml)
  --force              Overwrite an existing file

Environment:
  SIMCHECK_HOST, SIMCHECK_PORT, SIMCHECK_DEBUG, SIMCHECK_WORKERS override the config file.
  A .env file in the working directory is loaded first.

Examples:
  simcheck server
  simcheck analyze essay1.docx essay2.pdf
  simcheck analyze -threshold 0.6 -format json a.txt b.txt c.txt`)
}
