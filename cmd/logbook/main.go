package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/cli"
	"github.com/alexanderramin/logbook/internal/config"
	"github.com/alexanderramin/logbook/internal/logging"
	"github.com/alexanderramin/logbook/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// On a terminal the TUI owns the screen, so logs only go to a file.
	var fallback io.Writer = os.Stderr
	if interactive() {
		fallback = io.Discard
	}
	log, closer, err := logging.New(cfg.Logging, fallback)
	if err != nil {
		return err
	}
	defer closer.Close()

	client := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
	}, api.NewLogObserver(log))

	app := &cli.App{
		Gateway:       client,
		Health:        client,
		Observer:      service.NewLogUseCaseObserver(log),
		Log:           log,
		BaseURL:       client.BaseURL(),
		UserID:        cfg.User.DefaultID,
		StackOptions:  cfg.Form.StackOptions,
		IsInteractive: interactive,
	}

	log.WithField("base_url", app.BaseURL).Debug("starting logbook")

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
