package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"shop_automation/presentation/runner"
)

func main() {
	// .env is optional; explicit environment variables take precedence.
	_ = godotenv.Load()

	app := runner.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
