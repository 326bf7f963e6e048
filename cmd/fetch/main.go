// Command fetch runs a single chart lookup through the same handler the
// serverless function uses and prints the response.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
