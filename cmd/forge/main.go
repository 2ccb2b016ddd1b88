package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/productforge/forge/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// A blocked validation already wrote its JSON result to stdout;
		// the only remaining job is the exit code.
		if !errors.Is(err, cmd.ErrBlocked) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
