package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/passforge/passforge-go/internal/cli"
	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/config"
)

func main() {
	// A missing .env is normal for the CLI.
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(cfg.Logger())

	env := cli.Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
	}
	if clipboard.Available() {
		env.Clipboard = clipboard.System{}
	}

	os.Exit(cli.Run(os.Args[1:], env))
}
