package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gamestore/config"
	"gamestore/internal/app"
	"gamestore/internal/console"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/cobra"
)

func main() {
	var (
		seed       bool
		randomSeed int64
		script     string
	)

	root := &cobra.Command{
		Use:          "gamestore",
		Short:        "Interactive game store console",
		SilenceUsage: true,
	}
	root.Flags().BoolVar(&seed, "seed", true, "load the default users, games and sales")
	root.Flags().Int64Var(&randomSeed, "random-seed", 1, "seed for assigning developers to default games")
	root.Flags().StringVar(&script, "script", "", "read commands from a file instead of stdin")

	root.RunE = func(cmd *cobra.Command, args []string) error {
		log := logger.New("main").Function("console")

		cfg, err := config.New()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.SeedDefaults = seed
		}
		if cmd.Flags().Changed("random-seed") {
			cfg.SeedRandom = randomSeed
		}

		store, err := app.NewWithConfig(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Er("failed to close app", err)
			}
		}()

		var in io.Reader = os.Stdin
		shell := console.New(store.Controllers, store.Services.Policy, os.Stdout)
		if script != "" {
			file, err := os.Open(script)
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer file.Close()
			in = file
		} else {
			shell.Prompt = "> "
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return shell.Run(ctx, in)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
