package main

import (
	"LatticeDb/internal/config"
	"LatticeDb/internal/interpreter"
	"LatticeDb/internal/interpreter/eval"
	"fmt"
	"os"
)

func main() {
	cfg, err := config.Load("lattice", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	replLogger, err := cfg.Logger("repl", os.Stderr)
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
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	replLogger.Info("Starting LatticeDB with data directory %s", cfg.DataDir)
	if err := interpreter.Repl(os.Stdin, os.Stdout, ev, sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	replLogger.Info("Shutting down LatticeDB")
}
