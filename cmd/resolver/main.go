package main

import (
	"fmt"
	"os"
)

var Version = "dev-build"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
