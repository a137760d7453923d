// Command vectrace drives Vector workloads and logs how the vector grows
// and recovers from element failures.
package main

import (
	"fmt"
	"os"

	"github.com/pavanmanishd/vector/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "vectrace:", err)
		os.Exit(1)
	}
}
