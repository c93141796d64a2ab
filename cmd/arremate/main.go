// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/poiesic/arremate"
	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/config"
	"github.com/poiesic/arremate/export"
	"github.com/poiesic/arremate/search"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "arremate",
		Usage:     "Hybrid semantic and text search over a cached auction catalog",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "arremate.yaml",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the catalog, vectors and exports",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the catalog",
				ArgsUsage: "<terms...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "export",
						Aliases: []string{"e"},
						Usage:   "Write the results to a CSV file in the data directory",
					},
				},
			},
			{
				Name:   "process",
				Usage:  "Build the catalog and vector store from the scraper output",
				Action: processCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "fresh",
						Usage: "Clear the persistent embedding cache before processing",
					},
				},
			},
			{
				Name:   "init-config",
				Usage:  "Write the default configuration to the --config path",
				Action: initConfigCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
			},
		},
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("embedding-host") {
		cfg.Embedding.Host = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.Embedding.Model = c.String("embedding-model")
	}
	return cfg, cfg.Validate()
}

func outputStyles(c *cli.Context) styles {
	if c.Bool("no-color") {
		return plainStyles()
	}
	return defaultStyles()
}

func openEngine(c *cli.Context) (*arremate.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []arremate.EngineOption{arremate.WithLogger(slog.Default())}
	if slog.Default().Enabled(c.Context, slog.LevelDebug) {
		opts = append(opts, arremate.WithSearchMonitor(search.NewLogMonitor(slog.Default())))
	}
	return arremate.NewEngine(cfg, opts...)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("search terms are required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	st := outputStyles(c)
	out := c.App.Writer

	results, err := engine.Search(c.Context, query)
	if err != nil {
		if errors.Is(err, ai.ErrModelUnavailable) {
			fmt.Fprintln(out, st.Error.Render("Embedding model unavailable: check that the embedding service is running."))
		}
		return err
	}

	renderResults(out, st, query, results)

	if !c.Bool("export") {
		return nil
	}
	path, err := engine.Export(results, query)
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		fmt.Fprintln(out, st.Warning.Render("Nothing to export."))
		return nil
	case err != nil:
		fmt.Fprintln(out, st.Error.Render(fmt.Sprintf("Export failed: %v", err)))
		return err
	}
	fmt.Fprintln(out, st.Success.Render("Results saved to "+path))
	return nil
}

func processCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	st := outputStyles(c)
	out := c.App.Writer

	if c.Bool("fresh") {
		if err := engine.ClearCache(c.Context); err != nil {
			return fmt.Errorf("failed to clear embedding cache: %w", err)
		}
	}

	fmt.Fprintf(out, "Processing lots with %s...\n", engine.ModelName())
	summary, err := engine.Process(c.Context, c.App.ErrWriter)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, st.Success.Render(fmt.Sprintf(
		"Processed %d lots (%d skipped) into %d-dimensional vectors in %s.",
		summary.Lots, summary.Skipped, summary.Dimensions, summary.Elapsed.Round(time.Millisecond))))
	return nil
}

func initConfigCommand(c *cli.Context) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Default().WriteYAML(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
