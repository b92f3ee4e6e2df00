// Package main provides the directmux command line entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/maauso/directmux/internal/command"
)

func main() {
	if err := command.Execute(); err != nil {
		// The failure text has already been printed as the result
		if !errors.Is(err, command.ErrMuxFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
