package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/questgen/internal/config"
)

func main() {
	// Loaded before the commands are built so .env values become flag defaults.
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
