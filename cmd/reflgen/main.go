// Command reflgen generates synthesized invocation routines for the types
// listed in a reflgen.toml file.
//
//	//go:generate go run github.com/codewandler/reflx/cmd/reflgen -config reflgen.toml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/codewandler/reflx/internal/gen"
)

func main() {
	var (
		configPath = flag.String("config", "reflgen.toml", "path to the reflgen config")
		output     = flag.String("out", "", "override the generated file name")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, *configPath, *output); err != nil {
		fmt.Fprintln(os.Stderr, "reflgen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, configPath, output string) error {
	cfg, err := gen.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Output = output
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	_, err = gen.New(cfg, gen.Options{Log: log}).Run(ctx)
	return err
}
