// Package main is the entry point of the simbook CLI.
package main

import (
	"github.com/huangsam/simbook/cmd"
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/iocache"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; the environment and flags still apply without it
	_ = godotenv.Load()

	err := cmd.Execute()
	iocache.CloseCaching()
	if err != nil {
		contract.LogFatal("Error running command", err)
	}
}
