package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/playlist-pulse/internal/bootstrap"
)

func main() {
	if err := bootstrap.StartServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
