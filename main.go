package main

import (
	"os"

	"github.com/howardginsburg/ImageAIProcessor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
