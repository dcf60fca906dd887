package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"giftwrap/internal/cli"
	"giftwrap/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.SetupLogging(config.Default(), os.Stderr)
		log.Fatal().Err(err).Msg("config")
	}

	vsBot := flag.Bool("ai", true, "play against the computer")
	blocked := flag.Bool("blocked", cfg.BlockedCells, "place the four ice blocks")
	depth := flag.Int("depth", cfg.AIDepth, "search depth of the computer")
	parallel := flag.Bool("parallel", cfg.AIParallel, "search root moves in parallel")
	save := flag.Bool("save-config", false, "write the effective settings to the user config file")
	flag.Parse()

	cfg.AIDepth = *depth
	cfg.BlockedCells = *blocked
	cfg.AIParallel = *parallel
	if err := cfg.Validate(); err != nil {
		config.SetupLogging(*cfg, os.Stderr)
		log.Fatal().Err(err).Msg("flags")
	}
	config.SetupLogging(*cfg, os.Stderr)

	if *save {
		path, err := cfg.Save()
		if err != nil {
			log.Fatal().Err(err).Msg("save-config")
		}
		log.Info().Str("path", path).Msg("config-saved")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.Play(ctx, os.Stdin, os.Stdout, cli.Options{
		VsBot:    *vsBot,
		Blocked:  cfg.BlockedCells,
		Depth:    cfg.AIDepth,
		Parallel: cfg.AIParallel,
		Workers:  cfg.AIWorkers,
	})
}
