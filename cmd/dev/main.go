package main

import (
	"github.com/joho/godotenv"

	"devx/internal/cli"
)

func main() {
	// DEV_* settings may come from a .env file in the working directory.
	_ = godotenv.Load()
	cli.Execute()
}
