package main

import (
	"os"

	"github.com/SscSPs/holdco_books/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
