// ABOUTME: Entry point for the inventario CLI
// ABOUTME: Terminal client for the BAS inventory API

package main

import (
	"fmt"
	"os"

	"github.com/basinventario/inventario-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
