// main is the entry point for the seisavail CLI.
package main

import (
	"github.com/seistools/seisavail/cmd"
	"github.com/seistools/seisavail/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
