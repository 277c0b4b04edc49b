package main

import (
	"LatticeDb/internal/config"
	"LatticeDb/internal/server"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load("lattice-tui", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Log lines on the terminal would corrupt the alt screen.
	logger, err := cfg.Logger("tui", io.Discard)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	addr := serverURL(cfg.Addr)
	if err := server.WaitForServer(addr, 50, 100*time.Millisecond); err != nil {
		logger.Error("Server unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(addr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI stopped: %v", err)
		fmt.Println("Error running TUI:", err)
		os.Exit(1)
	}
}

// serverURL turns a listen address such as ":8080" into a base URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
