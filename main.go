package main

import (
	"os"

	"github.com/Gama646/quizdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
