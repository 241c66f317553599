// The collector is the scheduled batch entrypoint: one invocation measures
// the playlist once for the current day and refreshes the derived statistics.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonesrussell/playlist-pulse/internal/bootstrap"
)

func main() {
	if err := bootstrap.RunCollector(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
