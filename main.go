package main

import (
	"os"

	"github.com/abhisek/dass21/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
