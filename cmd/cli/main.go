package main

import (
	"fmt"
	"os"

	"github.com/de-tools/roi-atlas/pkg/runtime/terminal"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Dispatchers: email.NewDefaultRegistry(),
		Output:      os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
