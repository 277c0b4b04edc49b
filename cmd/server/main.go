package main

import (
	"LatticeDb/internal/config"
	"LatticeDb/internal/interpreter/eval"
	"LatticeDb/internal/server"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := config.Load("lattice-server", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := cfg.Logger("server", os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := cfg.Logger("interpreter", os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ev := eval.NewEvaluator(cfg.DataDir)
	sess := &eval.Session{}
	if cfg.Database != "" {
		if err := ev.Open(sess, cfg.Database); err != nil {
			logger.Error("Failed to open database %s: %v", cfg.Database, err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(ev, sess).ListenAndServe(ctx, cfg.Addr); err != nil {
		logger.Error("Server stopped: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
