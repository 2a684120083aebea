package main

import (
	"fmt"
	"os"

	"chatapp/internal/config"
	"chatapp/internal/logging"
	"chatapp/internal/store"
	"chatapp/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir, err = store.DefaultDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	log := logging.New(dataDir)
	defer log.Sync()

	p, err := ui.NewProgram(cfg, st, dataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
