package main

import (
	"os"

	"github.com/hijaydeep/Trivia-Game/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
